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

// SectionService administers sections within facilities.
type SectionService struct {
	base
}

func NewSectionService(ctx *database.Context, logger *log.Logger) *SectionService {
	return &SectionService{base: newBase("section service", ctx, logger, log.ComponentAdmin)}
}

// Create validates and inserts sec. Its ordinal must be free within the facility.
func (s *SectionService) Create(ctx context.Context, sec stats.Section) (*stats.Section, error) {
	sec.ID = 0
	var out stats.Section
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if err := s.validate(ctx, q, validation.ForSection(sec)); err != nil {
			return err
		}
		res, err := q.InsertSection(ctx, database.SectionInsertParams(sec))
		if err != nil {
			return database.TranslateConstraintError(err, sec.Ordinal)
		}
		id, err := lastInsertID(res)
		if err != nil {
			return err
		}
		row, err := q.FindSectionByID(ctx, id)
		if err != nil {
			return err
		}
		out = database.SectionFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "section created",
		log.FieldOperation, log.OpCreate,
		log.FieldFacilityID, out.FacilityID,
		log.FieldSectionID, out.ID,
	)
	return &out, nil
}

// Update replaces the stored fields of section sec.ID.
func (s *SectionService) Update(ctx context.Context, sec stats.Section) (*stats.Section, error) {
	var out stats.Section
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findSection(ctx, q, sec.ID); err != nil {
			return err
		}
		if err := s.validate(ctx, q, validation.ForSection(sec)); err != nil {
			return err
		}
		n, err := q.UpdateSection(ctx, database.SectionUpdateParams(sec))
		if err != nil {
			return database.TranslateConstraintError(err, sec.Ordinal)
		}
		if n == 0 {
			return notFound(validation.EntitySection, sec.ID)
		}
		row, err := q.FindSectionByID(ctx, sec.ID)
		if err != nil {
			return err
		}
		out = database.SectionFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "section updated", log.FieldOperation, log.OpUpdate, log.FieldSectionID, out.ID)
	return &out, nil
}

// Get returns section id or ErrNotFound.
func (s *SectionService) Get(ctx context.Context, id int64) (*stats.Section, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	row, err := findSection(ctx, q, id)
	if err != nil {
		return nil, err
	}
	sec := database.SectionFromRow(row)
	return &sec, nil
}

// List returns the sections of facilityID in ordinal order.
func (s *SectionService) List(ctx context.Context, facilityID int64, activeOnly bool) ([]stats.Section, error) {
	var out []stats.Section
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findFacility(ctx, q, facilityID); err != nil {
			return err
		}
		rows, err := q.ListSectionsByFacility(ctx, sqldb.ListSectionsByFacilityParams{
			FacilityID: facilityID,
			ActiveOnly: activeOnly,
		})
		if err != nil {
			return err
		}
		out = make([]stats.Section, 0, len(rows))
		for _, row := range rows {
			out = append(out, database.SectionFromRow(row))
		}
		return nil
	})
	return out, err
}

// Delete removes section id with its categories and daily rows.
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	q, err := s.queries()
	if err != nil {
		return err
	}
	n, err := q.DeleteSectionByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(validation.EntitySection, id)
	}
	s.logger.InfoContext(ctx, "section deleted", log.FieldOperation, log.OpDelete, log.FieldSectionID, id)
	return nil
}

func findSection(ctx context.Context, q *sqldb.Queries, id int64) (sqldb.Section, error) {
	row, err := q.FindSectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sqldb.Section{}, notFound(validation.EntitySection, id)
		}
		return sqldb.Section{}, err
	}
	return row, nil
}

// resolveSection loads sectionID as a member of facilityID, reporting whichever of the two is
// missing.
func resolveSection(ctx context.Context, q *sqldb.Queries, facilityID, sectionID int64) (sqldb.Section, error) {
	row, err := q.FindSectionInFacility(ctx, sqldb.FindSectionInFacilityParams{ID: sectionID, FacilityID: facilityID})
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return sqldb.Section{}, err
	}
	if _, ferr := findFacility(ctx, q, facilityID); ferr != nil {
		return sqldb.Section{}, ferr
	}
	return sqldb.Section{}, notFound(validation.EntitySection, sectionID)
}
