package sqldb

import "context"

const deleteAllDailies = `DELETE FROM dailies`

func (q *Queries) DeleteAllDailies(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllDailies)
	return err
}

const deleteAllDetails = `DELETE FROM details`

func (q *Queries) DeleteAllDetails(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllDetails)
	return err
}

const deleteAllCategories = `DELETE FROM categories`

func (q *Queries) DeleteAllCategories(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllCategories)
	return err
}

const deleteAllSections = `DELETE FROM sections`

func (q *Queries) DeleteAllSections(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllSections)
	return err
}

const deleteAllFacilities = `DELETE FROM facilities`

func (q *Queries) DeleteAllFacilities(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllFacilities)
	return err
}

const listAllSections = `SELECT ` + sectionColumns + ` FROM sections ORDER BY facility_id, ordinal, id`

func (q *Queries) ListAllSections(ctx context.Context) ([]Section, error) {
	rows, err := q.db.QueryContext(ctx, listAllSections)
	if err != nil {
		return nil, err
	}
	return collectSections(rows)
}

const listAllCategories = `SELECT ` + categoryColumns + ` FROM categories ORDER BY section_id, ordinal, id`

func (q *Queries) ListAllCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listAllCategories)
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

const listAllDetails = `SELECT id, category_id, date, value, notes, created_at FROM details ORDER BY id`

func (q *Queries) ListAllDetails(ctx context.Context) ([]Detail, error) {
	rows, err := q.db.QueryContext(ctx, listAllDetails)
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

const listAllDailies = `SELECT section_id, date, category_ids, category_values, updated_at
FROM dailies ORDER BY section_id, date`

func (q *Queries) ListAllDailies(ctx context.Context) ([]Daily, error) {
	rows, err := q.db.QueryContext(ctx, listAllDailies)
	if err != nil {
		return nil, err
	}
	return collectDailies(rows)
}
