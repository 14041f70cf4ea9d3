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

// FacilityService administers facilities.
type FacilityService struct {
	base
}

func NewFacilityService(ctx *database.Context, logger *log.Logger) *FacilityService {
	return &FacilityService{base: newBase("facility service", ctx, logger, log.ComponentAdmin)}
}

// Create validates and inserts f, returning the stored row.
func (s *FacilityService) Create(ctx context.Context, f stats.Facility) (*stats.Facility, error) {
	f.ID = 0
	var out stats.Facility
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if err := s.validate(ctx, q, validation.ForFacility(f)); err != nil {
			return err
		}
		res, err := q.InsertFacility(ctx, database.FacilityInsertParams(f))
		if err != nil {
			return database.TranslateConstraintError(err, f.Name)
		}
		id, err := lastInsertID(res)
		if err != nil {
			return err
		}
		row, err := q.FindFacilityByID(ctx, id)
		if err != nil {
			return err
		}
		out = database.FacilityFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "facility created", log.FieldOperation, log.OpCreate, log.FieldFacilityID, out.ID)
	return &out, nil
}

// Update replaces the stored fields of facility f.ID.
func (s *FacilityService) Update(ctx context.Context, f stats.Facility) (*stats.Facility, error) {
	var out stats.Facility
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findFacility(ctx, q, f.ID); err != nil {
			return err
		}
		if err := s.validate(ctx, q, validation.ForFacility(f)); err != nil {
			return err
		}
		n, err := q.UpdateFacility(ctx, database.FacilityUpdateParams(f))
		if err != nil {
			return database.TranslateConstraintError(err, f.Name)
		}
		if n == 0 {
			return notFound(validation.EntityFacility, f.ID)
		}
		row, err := q.FindFacilityByID(ctx, f.ID)
		if err != nil {
			return err
		}
		out = database.FacilityFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "facility updated", log.FieldOperation, log.OpUpdate, log.FieldFacilityID, out.ID)
	return &out, nil
}

// Get returns facility id or ErrNotFound.
func (s *FacilityService) Get(ctx context.Context, id int64) (*stats.Facility, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	row, err := findFacility(ctx, q, id)
	if err != nil {
		return nil, err
	}
	f := database.FacilityFromRow(row)
	return &f, nil
}

// List returns facilities ordered by name.
func (s *FacilityService) List(ctx context.Context, activeOnly bool) ([]stats.Facility, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	rows, err := q.ListFacilities(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Facility, 0, len(rows))
	for _, row := range rows {
		out = append(out, database.FacilityFromRow(row))
	}
	return out, nil
}

// Delete removes facility id with its sections, categories and daily rows.
func (s *FacilityService) Delete(ctx context.Context, id int64) error {
	q, err := s.queries()
	if err != nil {
		return err
	}
	n, err := q.DeleteFacilityByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(validation.EntityFacility, id)
	}
	s.logger.InfoContext(ctx, "facility deleted", log.FieldOperation, log.OpDelete, log.FieldFacilityID, id)
	return nil
}

func findFacility(ctx context.Context, q *sqldb.Queries, id int64) (sqldb.Facility, error) {
	row, err := q.FindFacilityByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sqldb.Facility{}, notFound(validation.EntityFacility, id)
		}
		return sqldb.Facility{}, err
	}
	return row, nil
}
