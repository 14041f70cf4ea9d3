// Package services implements the tally operations on top of the SQLite store: the
// aggregation engine, the daily write path, administration of the entity tree and
// maintenance.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tallykeep/tally/internal/database"
	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/log"
	"github.com/tallykeep/tally/internal/validation"
)

// ErrNotFound is returned when a referenced facility, section, category or detail does not exist.
var ErrNotFound = errors.New("not found")

// ErrConsistency is returned when a row observed earlier in a transaction is gone by the time
// it is written.
var ErrConsistency = errors.New("consistency failure")

func notFound(entity validation.Entity, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// base carries the store handle and logger shared by every service.
type base struct {
	name   string
	ctx    *database.Context
	logger *log.Logger
}

func newBase(name string, dbCtx *database.Context, logger *log.Logger, component string) base {
	if logger == nil {
		logger = log.Nop()
	}
	return base{name: name, ctx: dbCtx, logger: logger.WithComponent(component)}
}

// withTx runs fn against queries bound to a single transaction. Validation and the write it
// guards must both go through those queries.
func (b *base) withTx(ctx context.Context, fn func(context.Context, *sqldb.Queries) error) error {
	q, err := b.queries()
	if err != nil {
		return err
	}
	if b.ctx.DB == nil {
		return fmt.Errorf("%s: database handle not initialised", b.name)
	}

	tx, err := b.ctx.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	queries := q.WithTx(tx)

	if err := fn(ctx, queries); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}

func (b *base) queries() (*sqldb.Queries, error) {
	if b.ctx == nil {
		return nil, fmt.Errorf("%s: missing database context", b.name)
	}
	if b.ctx.Queries == nil {
		if b.ctx.DB == nil {
			return nil, fmt.Errorf("%s: database handle not initialised", b.name)
		}
		b.ctx.Queries = sqldb.New(b.ctx.DB)
	}
	return b.ctx.Queries, nil
}

// validate runs pipeline against q, logging rejections.
func (b *base) validate(ctx context.Context, q *sqldb.Queries, pipeline validation.Pipeline) error {
	err := pipeline.Run(ctx, database.NewConstraintStore(q))
	var verr *validation.Error
	if errors.As(err, &verr) {
		b.logger.WarnContext(ctx, "write rejected",
			log.FieldErrorType, log.ErrorTypeValidation,
			log.FieldField, verr.Field,
			log.FieldError, verr.Message,
		)
	}
	return err
}

func lastInsertID(res interface{ LastInsertId() (int64, error) }) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}
