package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tallykeep/tally/internal/database"
	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/log"
	"github.com/tallykeep/tally/internal/stats"
	"github.com/tallykeep/tally/internal/validation"
)

// DetailService records individual category values. Details are not read by the
// aggregation engine.
type DetailService struct {
	base
}

func NewDetailService(ctx *database.Context, logger *log.Logger) *DetailService {
	return &DetailService{base: newBase("detail service", ctx, logger, log.ComponentAdmin)}
}

// Create validates and inserts d.
func (s *DetailService) Create(ctx context.Context, d stats.Detail) (*stats.Detail, error) {
	d.ID = 0
	var out stats.Detail
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if err := s.validate(ctx, q, validation.ForDetail(d)); err != nil {
			return err
		}
		res, err := q.InsertDetail(ctx, database.DetailInsertParams(d))
		if err != nil {
			return database.TranslateConstraintError(err, d.CategoryID)
		}
		id, err := lastInsertID(res)
		if err != nil {
			return err
		}
		row, err := q.FindDetailByID(ctx, id)
		if err != nil {
			return err
		}
		out = database.DetailFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "detail recorded", log.FieldOperation, log.OpCreate, log.FieldCategoryID, out.CategoryID)
	return &out, nil
}

// Get returns detail id or ErrNotFound.
func (s *DetailService) Get(ctx context.Context, id int64) (*stats.Detail, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	row, err := q.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(validation.EntityDetail, id)
		}
		return nil, err
	}
	d := database.DetailFromRow(row)
	return &d, nil
}

// List returns the details of categoryID dated within [from, to].
func (s *DetailService) List(ctx context.Context, categoryID int64, from, to string) ([]stats.Detail, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	var out []stats.Detail
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findCategory(ctx, q, categoryID); err != nil {
			return err
		}
		rows, err := q.ListDetailsByCategory(ctx, sqldb.ListDetailsByCategoryParams{
			CategoryID: categoryID,
			DateFrom:   from,
			DateTo:     to,
		})
		if err != nil {
			return err
		}
		out = make([]stats.Detail, 0, len(rows))
		for _, row := range rows {
			out = append(out, database.DetailFromRow(row))
		}
		return nil
	})
	return out, err
}

// Delete removes detail id.
func (s *DetailService) Delete(ctx context.Context, id int64) error {
	q, err := s.queries()
	if err != nil {
		return err
	}
	n, err := q.DeleteDetailByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(validation.EntityDetail, id)
	}
	return nil
}
