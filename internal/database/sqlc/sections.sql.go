package sqldb

import (
	"context"
	"database/sql"
)

const sectionColumns = `id, facility_id, ordinal, scope, slug, title, active, notes, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (Section, error) {
	var i Section
	err := row.Scan(
		&i.ID,
		&i.FacilityID,
		&i.Ordinal,
		&i.Scope,
		&i.Slug,
		&i.Title,
		&i.Active,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectSections(rows *sql.Rows) ([]Section, error) {
	defer rows.Close()
	var items []Section
	for rows.Next() {
		i, err := scanSection(rows)
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

const findSectionByID = `SELECT ` + sectionColumns + ` FROM sections WHERE id = ?`

func (q *Queries) FindSectionByID(ctx context.Context, id int64) (Section, error) {
	return scanSection(q.db.QueryRowContext(ctx, findSectionByID, id))
}

const findSectionInFacility = `SELECT ` + sectionColumns + ` FROM sections WHERE id = ? AND facility_id = ?`

type FindSectionInFacilityParams struct {
	ID         int64
	FacilityID int64
}

func (q *Queries) FindSectionInFacility(ctx context.Context, arg FindSectionInFacilityParams) (Section, error) {
	return scanSection(q.db.QueryRowContext(ctx, findSectionInFacility, arg.ID, arg.FacilityID))
}

const listSectionsByFacility = `SELECT ` + sectionColumns + ` FROM sections
WHERE facility_id = ?1 AND (?2 = 0 OR active = 1)
ORDER BY ordinal, id`

type ListSectionsByFacilityParams struct {
	FacilityID int64
	ActiveOnly bool
}

func (q *Queries) ListSectionsByFacility(ctx context.Context, arg ListSectionsByFacilityParams) ([]Section, error) {
	rows, err := q.db.QueryContext(ctx, listSectionsByFacility, arg.FacilityID, arg.ActiveOnly)
	if err != nil {
		return nil, err
	}
	return collectSections(rows)
}

const insertSection = `INSERT INTO sections (facility_id, ordinal, scope, slug, title, active, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)`

type InsertSectionParams struct {
	FacilityID int64
	Ordinal    int64
	Scope      string
	Slug       string
	Title      string
	Active     int64
	Notes      sql.NullString
}

func (q *Queries) InsertSection(ctx context.Context, arg InsertSectionParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertSection,
		arg.FacilityID,
		arg.Ordinal,
		arg.Scope,
		arg.Slug,
		arg.Title,
		arg.Active,
		arg.Notes,
	)
}

const updateSection = `UPDATE sections
SET facility_id = ?, ordinal = ?, scope = ?, slug = ?, title = ?, active = ?, notes = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?`

type UpdateSectionParams struct {
	FacilityID int64
	Ordinal    int64
	Scope      string
	Slug       string
	Title      string
	Active     int64
	Notes      sql.NullString
	ID         int64
}

func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateSection,
		arg.FacilityID,
		arg.Ordinal,
		arg.Scope,
		arg.Slug,
		arg.Title,
		arg.Active,
		arg.Notes,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteSectionByID = `DELETE FROM sections WHERE id = ?`

func (q *Queries) DeleteSectionByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSectionByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
