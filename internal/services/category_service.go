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

// CategoryService administers the categories tracked by a section.
type CategoryService struct {
	base
}

func NewCategoryService(ctx *database.Context, logger *log.Logger) *CategoryService {
	return &CategoryService{base: newBase("category service", ctx, logger, log.ComponentAdmin)}
}

// Create validates and inserts c. Its ordinal must be free within the section.
func (s *CategoryService) Create(ctx context.Context, c stats.Category) (*stats.Category, error) {
	c.ID = 0
	var out stats.Category
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if err := s.validate(ctx, q, validation.ForCategory(c)); err != nil {
			return err
		}
		res, err := q.InsertCategory(ctx, database.CategoryInsertParams(c))
		if err != nil {
			return database.TranslateConstraintError(err, c.Ordinal)
		}
		id, err := lastInsertID(res)
		if err != nil {
			return err
		}
		row, err := q.FindCategoryByID(ctx, id)
		if err != nil {
			return err
		}
		out = database.CategoryFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "category created",
		log.FieldOperation, log.OpCreate,
		log.FieldSectionID, out.SectionID,
		log.FieldCategoryID, out.ID,
	)
	return &out, nil
}

// Update replaces the stored fields of category c.ID.
func (s *CategoryService) Update(ctx context.Context, c stats.Category) (*stats.Category, error) {
	var out stats.Category
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findCategory(ctx, q, c.ID); err != nil {
			return err
		}
		if err := s.validate(ctx, q, validation.ForCategory(c)); err != nil {
			return err
		}
		n, err := q.UpdateCategory(ctx, database.CategoryUpdateParams(c))
		if err != nil {
			return database.TranslateConstraintError(err, c.Ordinal)
		}
		if n == 0 {
			return notFound(validation.EntityCategory, c.ID)
		}
		row, err := q.FindCategoryByID(ctx, c.ID)
		if err != nil {
			return err
		}
		out = database.CategoryFromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "category updated", log.FieldOperation, log.OpUpdate, log.FieldCategoryID, out.ID)
	return &out, nil
}

// Get returns category id or ErrNotFound.
func (s *CategoryService) Get(ctx context.Context, id int64) (*stats.Category, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	row, err := findCategory(ctx, q, id)
	if err != nil {
		return nil, err
	}
	c := database.CategoryFromRow(row)
	return &c, nil
}

// List returns the categories of sectionID in ordinal order.
func (s *CategoryService) List(ctx context.Context, sectionID int64, activeOnly bool) ([]stats.Category, error) {
	var out []stats.Category
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findSection(ctx, q, sectionID); err != nil {
			return err
		}
		rows, err := q.ListCategoriesBySection(ctx, sqldb.ListCategoriesBySectionParams{
			SectionID:  sectionID,
			ActiveOnly: activeOnly,
		})
		if err != nil {
			return err
		}
		out = database.CategoriesFromRows(rows)
		return nil
	})
	return out, err
}

// Delete removes category id. Daily rows that still reference it keep the stale id, which
// readers drop.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	q, err := s.queries()
	if err != nil {
		return err
	}
	n, err := q.DeleteCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(validation.EntityCategory, id)
	}
	s.logger.InfoContext(ctx, "category deleted", log.FieldOperation, log.OpDelete, log.FieldCategoryID, id)
	return nil
}

func findCategory(ctx context.Context, q *sqldb.Queries, id int64) (sqldb.Category, error) {
	row, err := q.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sqldb.Category{}, notFound(validation.EntityCategory, id)
		}
		return sqldb.Category{}, err
	}
	return row, nil
}
