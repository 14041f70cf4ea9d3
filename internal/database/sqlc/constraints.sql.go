package sqldb

import "context"

const facilityExists = `SELECT EXISTS(SELECT 1 FROM facilities WHERE id = ?)`

func (q *Queries) FacilityExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, facilityExists, id).Scan(&exists)
	return exists, err
}

const sectionExists = `SELECT EXISTS(SELECT 1 FROM sections WHERE id = ?)`

func (q *Queries) SectionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, sectionExists, id).Scan(&exists)
	return exists, err
}

const categoryExists = `SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)`

func (q *Queries) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, categoryExists, id).Scan(&exists)
	return exists, err
}

const countFacilitiesByName = `SELECT COUNT(*) FROM facilities WHERE name = ? AND id <> ?`

type CountFacilitiesByNameParams struct {
	Name      string
	ExcludeID int64
}

func (q *Queries) CountFacilitiesByName(ctx context.Context, arg CountFacilitiesByNameParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countFacilitiesByName, arg.Name, arg.ExcludeID).Scan(&count)
	return count, err
}

const countFacilitiesByScope = `SELECT COUNT(*) FROM facilities WHERE scope = ? AND id <> ?`

type CountFacilitiesByScopeParams struct {
	Scope     string
	ExcludeID int64
}

func (q *Queries) CountFacilitiesByScope(ctx context.Context, arg CountFacilitiesByScopeParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countFacilitiesByScope, arg.Scope, arg.ExcludeID).Scan(&count)
	return count, err
}

const countSectionsByOrdinal = `SELECT COUNT(*) FROM sections WHERE facility_id = ? AND ordinal = ? AND id <> ?`

type CountSectionsByOrdinalParams struct {
	FacilityID int64
	Ordinal    int64
	ExcludeID  int64
}

func (q *Queries) CountSectionsByOrdinal(ctx context.Context, arg CountSectionsByOrdinalParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countSectionsByOrdinal, arg.FacilityID, arg.Ordinal, arg.ExcludeID).Scan(&count)
	return count, err
}

const countCategoriesByOrdinal = `SELECT COUNT(*) FROM categories WHERE section_id = ? AND ordinal = ? AND id <> ?`

type CountCategoriesByOrdinalParams struct {
	SectionID int64
	Ordinal   int64
	ExcludeID int64
}

func (q *Queries) CountCategoriesByOrdinal(ctx context.Context, arg CountCategoriesByOrdinalParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCategoriesByOrdinal, arg.SectionID, arg.Ordinal, arg.ExcludeID).Scan(&count)
	return count, err
}
