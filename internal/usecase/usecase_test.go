package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
)

func TestResolveRange(t *testing.T) {
	cases := []struct {
		name             string
		from, to, month  string
		wantFrom, wantTo string
		wantErr          bool
	}{
		{name: "explicit", from: "2020-07-01", to: "2020-07-15", wantFrom: "2020-07-01", wantTo: "2020-07-15"},
		{name: "month", month: "2020-02", wantFrom: "2020-02-01", wantTo: "2020-02-29"},
		{name: "december", month: "2019-12", wantFrom: "2019-12-01", wantTo: "2019-12-31"},
		{name: "inverted", from: "2020-07-15", to: "2020-07-01", wantErr: true},
		{name: "missing end", from: "2020-07-01", wantErr: true},
		{name: "month and range", from: "2020-07-01", to: "2020-07-02", month: "2020-07", wantErr: true},
		{name: "bad month", month: "2020-7", wantErr: true},
		{name: "bad date", from: "2020-07-01", to: "2020-07-32", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveRange(tc.from, tc.to, tc.month)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ResolveRange error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if got.From != tc.wantFrom || got.To != tc.wantTo {
				t.Fatalf("expected %s..%s, got %s..%s", tc.wantFrom, tc.wantTo, got.From, got.To)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	values, err := ParseValues([]string{"1=11", "2=null", "3= 4.5 ", "4="})
	if err != nil {
		t.Fatalf("ParseValues returned error: %v", err)
	}
	if len(values) != 4 {
		t.Fatalf("expected 4 values, got %d", len(values))
	}
	if values[1] == nil || *values[1] != 11 || values[2] != nil || *values[3] != 4.5 || values[4] != nil {
		t.Fatalf("unexpected values %v", values)
	}

	for _, bad := range [][]string{{"1"}, {"x=1"}, {"1=abc"}, {"1=1", "1=2"}, {"0=1"}} {
		if _, err := ParseValues(bad); err == nil {
			t.Fatalf("expected %v to be rejected", bad)
		}
	}
}

func TestStringKeyedRoundTrip(t *testing.T) {
	in := stats.Values{1: stats.Float(2), 30: nil}
	keyed := StringKeyed(in)
	if _, ok := keyed["30"]; !ok || *keyed["1"] != 2 {
		t.Fatalf("unexpected keyed map %v", keyed)
	}
	back, err := FromStringKeyed(keyed)
	if err != nil {
		t.Fatalf("FromStringKeyed returned error: %v", err)
	}
	if len(back) != 2 || *back[1] != 2 || back[30] != nil {
		t.Fatalf("unexpected values %v", back)
	}
	if _, err := FromStringKeyed(map[string]*float64{"one": nil}); err == nil {
		t.Fatalf("expected non-integer key to be rejected")
	}
}

func TestReportByScopeAndMonth(t *testing.T) {
	dbCtx, err := database.CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = database.CloseDatabase(dbCtx) })
	ctx := context.Background()

	facility, err := services.NewFacilityService(dbCtx, nil).Create(ctx, stats.Facility{Name: "North", Scope: "north", Active: true})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	section, err := services.NewSectionService(dbCtx, nil).Create(ctx, stats.Section{
		FacilityID: facility.ID, Ordinal: 1, Scope: "desk", Slug: "desk", Title: "Desk", Active: true,
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	cat, err := services.NewCategoryService(dbCtx, nil).Create(ctx, stats.Category{
		SectionID: section.ID, Ordinal: 1, Slug: "visits", Service: "Visits", Active: true,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	u := NewStats(dbCtx, nil)
	for _, date := range []string{"2020-07-01", "2020-07-31"} {
		if _, err := u.Write(ctx, "north", section.ID, date, stats.Values{cat.ID: stats.Float(2)}); err != nil {
			t.Fatalf("Write %s: %v", date, err)
		}
	}

	report, err := u.Report(ctx, ReportInput{Facility: "north", Month: "2020-07", Monthly: true})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.Summaries) != 1 || *report.Summaries[0].Values[cat.ID] != 4 {
		t.Fatalf("unexpected monthly summaries %+v", report.Summaries)
	}
	if report.Sections[section.ID].Title != "Desk" || len(report.Categories[section.ID]) != 1 {
		t.Fatalf("expected section metadata in report, got %+v", report)
	}

	if _, err := u.Read(ctx, "south", section.ID, "2020-07-01"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown scope, got %v", err)
	}

	for _, ref := range []string{"north", "north:desk", strconv.FormatInt(facility.ID, 10)} {
		got, err := u.ResolveFacility(ctx, ref)
		if err != nil {
			t.Fatalf("ResolveFacility(%q): %v", ref, err)
		}
		if got.ID != facility.ID {
			t.Fatalf("ResolveFacility(%q) = %d, want %d", ref, got.ID, facility.ID)
		}
	}
}
