package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/validation"
)

// ConstraintStore answers validation lookups through q, which should be bound to the
// transaction performing the guarded write.
type ConstraintStore struct {
	q *sqldb.Queries
}

// NewConstraintStore wraps q as a validation.Store.
func NewConstraintStore(q *sqldb.Queries) *ConstraintStore {
	return &ConstraintStore{q: q}
}

var _ validation.Store = (*ConstraintStore)(nil)

func (s *ConstraintStore) Exists(ctx context.Context, entity validation.Entity, id int64) (bool, error) {
	switch entity {
	case validation.EntityFacility:
		return s.q.FacilityExists(ctx, id)
	case validation.EntitySection:
		return s.q.SectionExists(ctx, id)
	case validation.EntityCategory:
		return s.q.CategoryExists(ctx, id)
	default:
		return false, fmt.Errorf("constraint store: no existence lookup for %s", entity)
	}
}

func (s *ConstraintStore) CountOthers(ctx context.Context, probe validation.Probe) (int64, error) {
	switch {
	case probe.Entity == validation.EntityFacility && probe.Field == "name":
		name, err := probeString(probe)
		if err != nil {
			return 0, err
		}
		return s.q.CountFacilitiesByName(ctx, sqldb.CountFacilitiesByNameParams{Name: name, ExcludeID: probe.ExcludeID})
	case probe.Entity == validation.EntityFacility && probe.Field == "scope":
		sc, err := probeString(probe)
		if err != nil {
			return 0, err
		}
		return s.q.CountFacilitiesByScope(ctx, sqldb.CountFacilitiesByScopeParams{Scope: sc, ExcludeID: probe.ExcludeID})
	case probe.Entity == validation.EntitySection && probe.Field == "ordinal":
		ordinal, err := probeInt64(probe)
		if err != nil {
			return 0, err
		}
		return s.q.CountSectionsByOrdinal(ctx, sqldb.CountSectionsByOrdinalParams{
			FacilityID: probe.ScopeID,
			Ordinal:    ordinal,
			ExcludeID:  probe.ExcludeID,
		})
	case probe.Entity == validation.EntityCategory && probe.Field == "ordinal":
		ordinal, err := probeInt64(probe)
		if err != nil {
			return 0, err
		}
		return s.q.CountCategoriesByOrdinal(ctx, sqldb.CountCategoriesByOrdinalParams{
			SectionID: probe.ScopeID,
			Ordinal:   ordinal,
			ExcludeID: probe.ExcludeID,
		})
	default:
		return 0, fmt.Errorf("constraint store: no uniqueness lookup for %s.%s", probe.Entity, probe.Field)
	}
}

func probeString(probe validation.Probe) (string, error) {
	v, ok := probe.Value.(string)
	if !ok {
		return "", fmt.Errorf("constraint store: %s.%s expects a string, got %T", probe.Entity, probe.Field, probe.Value)
	}
	return v, nil
}

func probeInt64(probe validation.Probe) (int64, error) {
	switch v := probe.Value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("constraint store: %s.%s expects an integer, got %T", probe.Entity, probe.Field, probe.Value)
	}
}

// uniqueIndexes maps the columns each UNIQUE constraint covers to the field reported.
var uniqueIndexes = []struct {
	columns string
	entity  validation.Entity
	field   string
}{
	{"facilities.name", validation.EntityFacility, "name"},
	{"facilities.scope", validation.EntityFacility, "scope"},
	{"sections.facility_id, sections.ordinal", validation.EntitySection, "ordinal"},
	{"categories.section_id, categories.ordinal", validation.EntityCategory, "ordinal"},
	{"dailies.section_id, dailies.date", validation.EntityDaily, "date"},
}

// TranslateConstraintError turns a store-level UNIQUE or FOREIGN KEY violation into a
// *validation.Error. Other errors are returned unchanged. value is reported as the
// offending value.
func TranslateConstraintError(err error, value any) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	code := sqliteErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}
	msg := sqliteErr.Error()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || strings.Contains(msg, "FOREIGN KEY"):
		return &validation.Error{Field: "reference", Value: value, Message: "references a missing row"}
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || strings.Contains(msg, "UNIQUE"):
		for _, idx := range uniqueIndexes {
			if strings.Contains(msg, idx.columns) {
				return &validation.Error{Entity: idx.entity, Field: idx.field, Value: value, Message: "must be unique"}
			}
		}
		return &validation.Error{Field: "unknown", Value: value, Message: msg}
	default:
		return err
	}
}
