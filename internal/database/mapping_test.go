package database

import (
	"strings"
	"testing"

	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/stats"
)

func TestDailyParamsEncodeParallelArrays(t *testing.T) {
	params, err := DailyInsertParams(stats.Daily{
		SectionID:      3,
		Date:           "2020-07-04",
		CategoryIDs:    []int64{1, 2, 3},
		CategoryValues: []*float64{stats.Float(11), nil, stats.Float(33.5)},
	})
	if err != nil {
		t.Fatalf("DailyInsertParams returned error: %v", err)
	}
	if params.CategoryIds != "[1,2,3]" {
		t.Fatalf("unexpected ids encoding %q", params.CategoryIds)
	}
	if params.CategoryValues != "[11,null,33.5]" {
		t.Fatalf("unexpected values encoding %q", params.CategoryValues)
	}
}

func TestDailyParamsEncodeEmptyAsArrays(t *testing.T) {
	params, err := DailyUpdateParams(stats.Daily{SectionID: 1, Date: "2020-07-04"})
	if err != nil {
		t.Fatalf("DailyUpdateParams returned error: %v", err)
	}
	if params.CategoryIds != "[]" || params.CategoryValues != "[]" {
		t.Fatalf("expected empty arrays, got %q and %q", params.CategoryIds, params.CategoryValues)
	}
}

func TestDailyParamsRejectMisalignedArrays(t *testing.T) {
	_, err := DailyInsertParams(stats.Daily{
		SectionID:      1,
		Date:           "2020-07-04",
		CategoryIDs:    []int64{1, 2},
		CategoryValues: []*float64{nil},
	})
	if err == nil {
		t.Fatalf("expected misaligned arrays to be rejected")
	}
}

func TestDailyFromRow(t *testing.T) {
	daily, err := DailyFromRow(sqldb.Daily{
		SectionID:      3,
		Date:           "2020-07-04",
		CategoryIds:    "[1,2]",
		CategoryValues: "[4,null]",
	})
	if err != nil {
		t.Fatalf("DailyFromRow returned error: %v", err)
	}
	if len(daily.CategoryIDs) != 2 || daily.CategoryIDs[0] != 1 || daily.CategoryIDs[1] != 2 {
		t.Fatalf("unexpected ids %v", daily.CategoryIDs)
	}
	if daily.CategoryValues[0] == nil || *daily.CategoryValues[0] != 4 || daily.CategoryValues[1] != nil {
		t.Fatalf("unexpected values %v", daily.CategoryValues)
	}
}

func TestDailyFromRowRejectsCorruptRows(t *testing.T) {
	cases := []struct {
		name   string
		ids    string
		values string
		want   string
	}{
		{name: "length mismatch", ids: "[1,2]", values: "[1]", want: "2 category ids but 1 values"},
		{name: "bad ids", ids: "{", values: "[]", want: "category ids"},
		{name: "bad values", ids: "[]", values: `["x"]`, want: "category values"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DailyFromRow(sqldb.Daily{SectionID: 1, Date: "2020-07-04", CategoryIds: tc.ids, CategoryValues: tc.values})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFacilityParamsRoundTripOptionalFields(t *testing.T) {
	f := stats.Facility{ID: 9, Name: "North", Scope: "north", Active: true, City: "Springfield"}
	params := FacilityUpdateParams(f)
	if params.ID != 9 || params.Active != 1 {
		t.Fatalf("unexpected params %+v", params)
	}
	if params.Address1.Valid || !params.City.Valid || params.City.String != "Springfield" {
		t.Fatalf("expected only city to be set, got %+v", params)
	}

	row := sqldb.Facility{ID: 9, Name: "North", Scope: "north", Active: 1, City: params.City}
	got := FacilityFromRow(row)
	if got.City != "Springfield" || got.Address1 != "" || !got.Active {
		t.Fatalf("unexpected facility %+v", got)
	}
}
