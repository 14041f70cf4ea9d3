package sqldb

import (
	"context"
	"database/sql"
)

func collectDailies(rows *sql.Rows) ([]Daily, error) {
	defer rows.Close()
	var items []Daily
	for rows.Next() {
		var i Daily
		if err := rows.Scan(
			&i.SectionID,
			&i.Date,
			&i.CategoryIds,
			&i.CategoryValues,
			&i.UpdatedAt,
		); err != nil {
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

const findDaily = `SELECT section_id, date, category_ids, category_values, updated_at
FROM dailies WHERE section_id = ? AND date = ?`

type FindDailyParams struct {
	SectionID int64
	Date      string
}

func (q *Queries) FindDaily(ctx context.Context, arg FindDailyParams) (Daily, error) {
	row := q.db.QueryRowContext(ctx, findDaily, arg.SectionID, arg.Date)
	var i Daily
	err := row.Scan(
		&i.SectionID,
		&i.Date,
		&i.CategoryIds,
		&i.CategoryValues,
		&i.UpdatedAt,
	)
	return i, err
}

const listDailiesBySectionInRange = `SELECT section_id, date, category_ids, category_values, updated_at
FROM dailies
WHERE section_id = ? AND date >= ? AND date <= ?
ORDER BY date`

type ListDailiesBySectionInRangeParams struct {
	SectionID int64
	DateFrom  string
	DateTo    string
}

func (q *Queries) ListDailiesBySectionInRange(ctx context.Context, arg ListDailiesBySectionInRangeParams) ([]Daily, error) {
	rows, err := q.db.QueryContext(ctx, listDailiesBySectionInRange, arg.SectionID, arg.DateFrom, arg.DateTo)
	if err != nil {
		return nil, err
	}
	return collectDailies(rows)
}

const insertDaily = `INSERT INTO dailies (section_id, date, category_ids, category_values)
VALUES (?, ?, ?, ?)`

type InsertDailyParams struct {
	SectionID      int64
	Date           string
	CategoryIds    string
	CategoryValues string
}

func (q *Queries) InsertDaily(ctx context.Context, arg InsertDailyParams) error {
	_, err := q.db.ExecContext(ctx, insertDaily, arg.SectionID, arg.Date, arg.CategoryIds, arg.CategoryValues)
	return err
}

const updateDaily = `UPDATE dailies
SET category_ids = ?, category_values = ?, updated_at = CURRENT_TIMESTAMP
WHERE section_id = ? AND date = ?`

type UpdateDailyParams struct {
	CategoryIds    string
	CategoryValues string
	SectionID      int64
	Date           string
}

func (q *Queries) UpdateDaily(ctx context.Context, arg UpdateDailyParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateDaily, arg.CategoryIds, arg.CategoryValues, arg.SectionID, arg.Date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteDailiesBefore = `DELETE FROM dailies WHERE date < ?`

func (q *Queries) DeleteDailiesBefore(ctx context.Context, date string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteDailiesBefore, date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
