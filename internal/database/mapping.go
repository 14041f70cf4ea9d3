package database

import (
	"encoding/json"
	"fmt"

	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/stats"
)

// FacilityFromRow converts a facilities row.
func FacilityFromRow(row sqldb.Facility) stats.Facility {
	return stats.Facility{
		ID:        row.ID,
		Name:      row.Name,
		Scope:     row.Scope,
		Active:    row.Active != 0,
		Address1:  optionalString(row.Address1),
		Address2:  optionalString(row.Address2),
		City:      optionalString(row.City),
		State:     optionalString(row.State),
		ZipCode:   optionalString(row.ZipCode),
		CreatedAt: optionalTime(row.CreatedAt),
		UpdatedAt: optionalTime(row.UpdatedAt),
	}
}

// FacilityInsertParams builds insert parameters from f.
func FacilityInsertParams(f stats.Facility) sqldb.InsertFacilityParams {
	return sqldb.InsertFacilityParams{
		Name:     f.Name,
		Scope:    f.Scope,
		Active:   boolToInt64(f.Active),
		Address1: nullString(f.Address1),
		Address2: nullString(f.Address2),
		City:     nullString(f.City),
		State:    nullString(f.State),
		ZipCode:  nullString(f.ZipCode),
	}
}

// FacilityUpdateParams builds update parameters from f, keyed by f.ID.
func FacilityUpdateParams(f stats.Facility) sqldb.UpdateFacilityParams {
	p := FacilityInsertParams(f)
	return sqldb.UpdateFacilityParams{
		Name:     p.Name,
		Scope:    p.Scope,
		Active:   p.Active,
		Address1: p.Address1,
		Address2: p.Address2,
		City:     p.City,
		State:    p.State,
		ZipCode:  p.ZipCode,
		ID:       f.ID,
	}
}

// SectionFromRow converts a sections row.
func SectionFromRow(row sqldb.Section) stats.Section {
	return stats.Section{
		ID:         row.ID,
		FacilityID: row.FacilityID,
		Ordinal:    row.Ordinal,
		Scope:      row.Scope,
		Slug:       row.Slug,
		Title:      row.Title,
		Active:     row.Active != 0,
		Notes:      optionalString(row.Notes),
		CreatedAt:  optionalTime(row.CreatedAt),
		UpdatedAt:  optionalTime(row.UpdatedAt),
	}
}

// SectionInsertParams builds insert parameters from s.
func SectionInsertParams(s stats.Section) sqldb.InsertSectionParams {
	return sqldb.InsertSectionParams{
		FacilityID: s.FacilityID,
		Ordinal:    s.Ordinal,
		Scope:      s.Scope,
		Slug:       s.Slug,
		Title:      s.Title,
		Active:     boolToInt64(s.Active),
		Notes:      nullString(s.Notes),
	}
}

// SectionUpdateParams builds update parameters from s, keyed by s.ID.
func SectionUpdateParams(s stats.Section) sqldb.UpdateSectionParams {
	return sqldb.UpdateSectionParams{
		FacilityID: s.FacilityID,
		Ordinal:    s.Ordinal,
		Scope:      s.Scope,
		Slug:       s.Slug,
		Title:      s.Title,
		Active:     boolToInt64(s.Active),
		Notes:      nullString(s.Notes),
		ID:         s.ID,
	}
}

// CategoryFromRow converts a categories row.
func CategoryFromRow(row sqldb.Category) stats.Category {
	return stats.Category{
		ID:          row.ID,
		SectionID:   row.SectionID,
		Ordinal:     row.Ordinal,
		Slug:        row.Slug,
		Service:     row.Service,
		Accumulated: row.Accumulated != 0,
		Active:      row.Active != 0,
		Notes:       optionalString(row.Notes),
		CreatedAt:   optionalTime(row.CreatedAt),
		UpdatedAt:   optionalTime(row.UpdatedAt),
	}
}

// CategoriesFromRows converts rows in order.
func CategoriesFromRows(rows []sqldb.Category) []stats.Category {
	out := make([]stats.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryFromRow(row))
	}
	return out
}

// CategoryInsertParams builds insert parameters from c.
func CategoryInsertParams(c stats.Category) sqldb.InsertCategoryParams {
	return sqldb.InsertCategoryParams{
		SectionID:   c.SectionID,
		Ordinal:     c.Ordinal,
		Slug:        c.Slug,
		Service:     c.Service,
		Accumulated: boolToInt64(c.Accumulated),
		Active:      boolToInt64(c.Active),
		Notes:       nullString(c.Notes),
	}
}

// CategoryUpdateParams builds update parameters from c, keyed by c.ID.
func CategoryUpdateParams(c stats.Category) sqldb.UpdateCategoryParams {
	return sqldb.UpdateCategoryParams{
		SectionID:   c.SectionID,
		Ordinal:     c.Ordinal,
		Slug:        c.Slug,
		Service:     c.Service,
		Accumulated: boolToInt64(c.Accumulated),
		Active:      boolToInt64(c.Active),
		Notes:       nullString(c.Notes),
		ID:          c.ID,
	}
}

// DetailFromRow converts a details row.
func DetailFromRow(row sqldb.Detail) stats.Detail {
	return stats.Detail{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Date:       row.Date,
		Value:      optionalFloat64(row.Value),
		Notes:      optionalString(row.Notes),
		CreatedAt:  optionalTime(row.CreatedAt),
	}
}

// DetailInsertParams builds insert parameters from d.
func DetailInsertParams(d stats.Detail) sqldb.InsertDetailParams {
	return sqldb.InsertDetailParams{
		CategoryID: d.CategoryID,
		Date:       d.Date,
		Value:      nullFloat64(d.Value),
		Notes:      nullString(d.Notes),
	}
}

// DailyFromRow decodes the stored parallel arrays. Arrays of different lengths are rejected.
func DailyFromRow(row sqldb.Daily) (stats.Daily, error) {
	daily := stats.Daily{SectionID: row.SectionID, Date: row.Date}
	if err := decodeArray(row.CategoryIds, &daily.CategoryIDs); err != nil {
		return stats.Daily{}, fmt.Errorf("daily %d/%s category ids: %w", row.SectionID, row.Date, err)
	}
	if err := decodeArray(row.CategoryValues, &daily.CategoryValues); err != nil {
		return stats.Daily{}, fmt.Errorf("daily %d/%s category values: %w", row.SectionID, row.Date, err)
	}
	if len(daily.CategoryIDs) != len(daily.CategoryValues) {
		return stats.Daily{}, fmt.Errorf("daily %d/%s: %d category ids but %d values",
			row.SectionID, row.Date, len(daily.CategoryIDs), len(daily.CategoryValues))
	}
	return daily, nil
}

// DailiesFromRows decodes rows in order.
func DailiesFromRows(rows []sqldb.Daily) ([]stats.Daily, error) {
	out := make([]stats.Daily, 0, len(rows))
	for _, row := range rows {
		daily, err := DailyFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, daily)
	}
	return out, nil
}

// DailyInsertParams encodes d for insertion.
func DailyInsertParams(d stats.Daily) (sqldb.InsertDailyParams, error) {
	ids, values, err := encodeDaily(d)
	if err != nil {
		return sqldb.InsertDailyParams{}, err
	}
	return sqldb.InsertDailyParams{
		SectionID:      d.SectionID,
		Date:           d.Date,
		CategoryIds:    ids,
		CategoryValues: values,
	}, nil
}

// DailyUpdateParams encodes d as a full replacement of its row.
func DailyUpdateParams(d stats.Daily) (sqldb.UpdateDailyParams, error) {
	ids, values, err := encodeDaily(d)
	if err != nil {
		return sqldb.UpdateDailyParams{}, err
	}
	return sqldb.UpdateDailyParams{
		CategoryIds:    ids,
		CategoryValues: values,
		SectionID:      d.SectionID,
		Date:           d.Date,
	}, nil
}

func encodeDaily(d stats.Daily) (string, string, error) {
	if len(d.CategoryIDs) != len(d.CategoryValues) {
		return "", "", fmt.Errorf("daily %d/%s: %d category ids but %d values",
			d.SectionID, d.Date, len(d.CategoryIDs), len(d.CategoryValues))
	}
	ids := d.CategoryIDs
	if ids == nil {
		ids = []int64{}
	}
	values := d.CategoryValues
	if values == nil {
		values = []*float64{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return "", "", err
	}
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return "", "", err
	}
	return string(idsJSON), string(valuesJSON), nil
}

func decodeArray[T any](raw string, dst *[]T) error {
	if raw == "" {
		*dst = []T{}
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
