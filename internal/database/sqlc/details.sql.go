package sqldb

import (
	"context"
	"database/sql"
)

const insertDetail = `INSERT INTO details (category_id, date, value, notes) VALUES (?, ?, ?, ?)`

type InsertDetailParams struct {
	CategoryID int64
	Date       string
	Value      sql.NullFloat64
	Notes      sql.NullString
}

func (q *Queries) InsertDetail(ctx context.Context, arg InsertDetailParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertDetail, arg.CategoryID, arg.Date, arg.Value, arg.Notes)
}

const findDetailByID = `SELECT id, category_id, date, value, notes, created_at FROM details WHERE id = ?`

func (q *Queries) FindDetailByID(ctx context.Context, id int64) (Detail, error) {
	row := q.db.QueryRowContext(ctx, findDetailByID, id)
	var i Detail
	err := row.Scan(&i.ID, &i.CategoryID, &i.Date, &i.Value, &i.Notes, &i.CreatedAt)
	return i, err
}

const listDetailsByCategory = `SELECT id, category_id, date, value, notes, created_at
FROM details
WHERE category_id = ? AND date >= ? AND date <= ?
ORDER BY date, id`

type ListDetailsByCategoryParams struct {
	CategoryID int64
	DateFrom   string
	DateTo     string
}

func (q *Queries) ListDetailsByCategory(ctx context.Context, arg ListDetailsByCategoryParams) ([]Detail, error) {
	rows, err := q.db.QueryContext(ctx, listDetailsByCategory, arg.CategoryID, arg.DateFrom, arg.DateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Detail
	for rows.Next() {
		var i Detail
		if err := rows.Scan(&i.ID, &i.CategoryID, &i.Date, &i.Value, &i.Notes, &i.CreatedAt); err != nil {
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

const deleteDetailByID = `DELETE FROM details WHERE id = ?`

func (q *Queries) DeleteDetailByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteDetailByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
