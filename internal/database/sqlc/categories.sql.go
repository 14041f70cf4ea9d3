package sqldb

import (
	"context"
	"database/sql"
)

const categoryColumns = `id, section_id, ordinal, slug, service, accumulated, active, notes, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var i Category
	err := row.Scan(
		&i.ID,
		&i.SectionID,
		&i.Ordinal,
		&i.Slug,
		&i.Service,
		&i.Accumulated,
		&i.Active,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findCategoryByID = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`

func (q *Queries) FindCategoryByID(ctx context.Context, id int64) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, findCategoryByID, id))
}

const listCategoriesBySection = `SELECT ` + categoryColumns + ` FROM categories
WHERE section_id = ?1 AND (?2 = 0 OR active = 1)
ORDER BY ordinal, id`

type ListCategoriesBySectionParams struct {
	SectionID  int64
	ActiveOnly bool
}

func (q *Queries) ListCategoriesBySection(ctx context.Context, arg ListCategoriesBySectionParams) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategoriesBySection, arg.SectionID, arg.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		i, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertCategory = `INSERT INTO categories (section_id, ordinal, slug, service, accumulated, active, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)`

type InsertCategoryParams struct {
	SectionID   int64
	Ordinal     int64
	Slug        string
	Service     string
	Accumulated int64
	Active      int64
	Notes       sql.NullString
}

func (q *Queries) InsertCategory(ctx context.Context, arg InsertCategoryParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertCategory,
		arg.SectionID,
		arg.Ordinal,
		arg.Slug,
		arg.Service,
		arg.Accumulated,
		arg.Active,
		arg.Notes,
	)
}

const updateCategory = `UPDATE categories
SET section_id = ?, ordinal = ?, slug = ?, service = ?, accumulated = ?, active = ?, notes = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?`

type UpdateCategoryParams struct {
	SectionID   int64
	Ordinal     int64
	Slug        string
	Service     string
	Accumulated int64
	Active      int64
	Notes       sql.NullString
	ID          int64
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateCategory,
		arg.SectionID,
		arg.Ordinal,
		arg.Slug,
		arg.Service,
		arg.Accumulated,
		arg.Active,
		arg.Notes,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteCategoryByID = `DELETE FROM categories WHERE id = ?`

func (q *Queries) DeleteCategoryByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCategoryByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
