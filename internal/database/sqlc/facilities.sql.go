package sqldb

import (
	"context"
	"database/sql"
)

const facilityColumns = `id, name, scope, active, address1, address2, city, state, zip_code, created_at, updated_at`

func scanFacility(row interface{ Scan(...any) error }) (Facility, error) {
	var i Facility
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Scope,
		&i.Active,
		&i.Address1,
		&i.Address2,
		&i.City,
		&i.State,
		&i.ZipCode,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findFacilityByID = `SELECT ` + facilityColumns + ` FROM facilities WHERE id = ?`

func (q *Queries) FindFacilityByID(ctx context.Context, id int64) (Facility, error) {
	return scanFacility(q.db.QueryRowContext(ctx, findFacilityByID, id))
}

const listFacilities = `SELECT ` + facilityColumns + ` FROM facilities
WHERE (?1 = 0 OR active = 1)
ORDER BY name`

func (q *Queries) ListFacilities(ctx context.Context, activeOnly bool) ([]Facility, error) {
	rows, err := q.db.QueryContext(ctx, listFacilities, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Facility
	for rows.Next() {
		i, err := scanFacility(rows)
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

const insertFacility = `INSERT INTO facilities (name, scope, active, address1, address2, city, state, zip_code)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type InsertFacilityParams struct {
	Name     string
	Scope    string
	Active   int64
	Address1 sql.NullString
	Address2 sql.NullString
	City     sql.NullString
	State    sql.NullString
	ZipCode  sql.NullString
}

func (q *Queries) InsertFacility(ctx context.Context, arg InsertFacilityParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertFacility,
		arg.Name,
		arg.Scope,
		arg.Active,
		arg.Address1,
		arg.Address2,
		arg.City,
		arg.State,
		arg.ZipCode,
	)
}

const updateFacility = `UPDATE facilities
SET name = ?, scope = ?, active = ?, address1 = ?, address2 = ?, city = ?, state = ?, zip_code = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?`

type UpdateFacilityParams struct {
	Name     string
	Scope    string
	Active   int64
	Address1 sql.NullString
	Address2 sql.NullString
	City     sql.NullString
	State    sql.NullString
	ZipCode  sql.NullString
	ID       int64
}

func (q *Queries) UpdateFacility(ctx context.Context, arg UpdateFacilityParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateFacility,
		arg.Name,
		arg.Scope,
		arg.Active,
		arg.Address1,
		arg.Address2,
		arg.City,
		arg.State,
		arg.ZipCode,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteFacilityByID = `DELETE FROM facilities WHERE id = ?`

func (q *Queries) DeleteFacilityByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteFacilityByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
