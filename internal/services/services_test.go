package services

import (
	"context"
	"testing"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/stats"
)

func setupServiceDB(t *testing.T) *database.Context {
	t.Helper()
	ctx, err := database.CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}

	t.Cleanup(func() {
		if err := database.CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

// fixture is one facility with one section holding three categories.
type fixture struct {
	db         *database.Context
	facility   *stats.Facility
	section    *stats.Section
	categories []stats.Category
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dbCtx := setupServiceDB(t)
	ctx := context.Background()

	facility, err := NewFacilityService(dbCtx, nil).Create(ctx, stats.Facility{Name: "North Library", Scope: "north", Active: true})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	section := createSection(t, dbCtx, facility.ID, 1, true)

	var cats []stats.Category
	for ordinal, service := range []string{"Reference", "Circulation", "Programs"} {
		cats = append(cats, createCategory(t, dbCtx, section.ID, int64(ordinal+1), service, true))
	}
	return fixture{db: dbCtx, facility: facility, section: section, categories: cats}
}

func createSection(t *testing.T, dbCtx *database.Context, facilityID, ordinal int64, active bool) *stats.Section {
	t.Helper()
	sec, err := NewSectionService(dbCtx, nil).Create(context.Background(), stats.Section{
		FacilityID: facilityID,
		Ordinal:    ordinal,
		Scope:      "desk",
		Slug:       "desk",
		Title:      "Front Desk",
		Active:     active,
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	return sec
}

func createCategory(t *testing.T, dbCtx *database.Context, sectionID, ordinal int64, service string, active bool) stats.Category {
	t.Helper()
	c, err := NewCategoryService(dbCtx, nil).Create(context.Background(), stats.Category{
		SectionID:   sectionID,
		Ordinal:     ordinal,
		Slug:        service,
		Service:     service,
		Accumulated: true,
		Active:      active,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return *c
}

func (f fixture) catID(i int) int64 {
	return f.categories[i].ID
}

func assertValues(t *testing.T, got stats.Values, want stats.Values) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d: %v", len(want), len(got), describe(got))
	}
	for id, w := range want {
		g, ok := got[id]
		if !ok {
			t.Fatalf("missing category %d in %v", id, describe(got))
		}
		switch {
		case w == nil && g != nil:
			t.Fatalf("category %d: expected null, got %v", id, *g)
		case w != nil && g == nil:
			t.Fatalf("category %d: expected %v, got null", id, *w)
		case w != nil && *w != *g:
			t.Fatalf("category %d: expected %v, got %v", id, *w, *g)
		}
	}
}

func describe(values stats.Values) map[int64]any {
	out := make(map[int64]any, len(values))
	for id, v := range values {
		if v == nil {
			out[id] = nil
		} else {
			out[id] = *v
		}
	}
	return out
}
