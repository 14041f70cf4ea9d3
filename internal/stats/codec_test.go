package stats

import (
	"encoding/json"
	"testing"
)

func valueEquals(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func assertValues(t *testing.T, got Values, want Values) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d (%v)", len(want), len(got), got)
	}
	for id, w := range want {
		g, ok := got[id]
		if !ok {
			t.Fatalf("missing category %d in %v", id, got)
		}
		if !valueEquals(g, w) {
			t.Fatalf("category %d: expected %v, got %v", id, deref(w), deref(g))
		}
	}
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func TestToSummaryWithoutDailyIsAllNil(t *testing.T) {
	cats := NewCategorySet(1, 2, 3)
	summary := ToSummary(7, "2020-07-04", cats, nil)

	if summary.SectionID != 7 || summary.Date != "2020-07-04" {
		t.Fatalf("unexpected summary identity: %+v", summary)
	}
	assertValues(t, summary.Values, Values{1: nil, 2: nil, 3: nil})
}

func TestToSummaryDropsStaleAndFillsMissing(t *testing.T) {
	cats := NewCategorySet(1, 2, 4)
	daily := &Daily{
		SectionID:      7,
		Date:           "2020-07-04",
		CategoryIDs:    []int64{1, 3, 2},
		CategoryValues: []*float64{Float(11), Float(99), nil},
	}

	summary := ToSummary(7, "2020-07-04", cats, daily)
	assertValues(t, summary.Values, Values{1: Float(11), 2: nil, 4: nil})
}

func TestToDailyDropsUnknownKeys(t *testing.T) {
	cats := NewCategorySet(1, 2, 3)
	summary := Summary{
		SectionID: 7,
		Date:      "2020-07-04",
		Values:    Values{3: Float(33), 1: Float(11), 2: nil, 42: Float(5)},
	}

	daily := ToDaily(7, "2020-07-04", cats, summary)
	if len(daily.CategoryIDs) != len(daily.CategoryValues) {
		t.Fatalf("ids and values must be aligned: %v / %v", daily.CategoryIDs, daily.CategoryValues)
	}
	wantIDs := []int64{1, 2, 3}
	if len(daily.CategoryIDs) != len(wantIDs) {
		t.Fatalf("expected ids %v, got %v", wantIDs, daily.CategoryIDs)
	}
	for i, id := range wantIDs {
		if daily.CategoryIDs[i] != id {
			t.Fatalf("expected ids %v, got %v", wantIDs, daily.CategoryIDs)
		}
	}
	if !valueEquals(daily.CategoryValues[0], Float(11)) || daily.CategoryValues[1] != nil || !valueEquals(daily.CategoryValues[2], Float(33)) {
		t.Fatalf("unexpected values %v", daily.CategoryValues)
	}
}

func TestToDailyOmitsCategoriesMissingFromSummary(t *testing.T) {
	cats := NewCategorySet(1, 2, 3)
	daily := ToDaily(7, "2020-07-04", cats, Summary{Values: Values{2: Float(5)}})

	if len(daily.CategoryIDs) != 1 || daily.CategoryIDs[0] != 2 {
		t.Fatalf("expected only category 2, got %v", daily.CategoryIDs)
	}

	summary := ToSummary(7, "2020-07-04", cats, &daily)
	assertValues(t, summary.Values, Values{1: nil, 2: Float(5), 3: nil})
}

func TestRoundTripRestrictedToValidKeys(t *testing.T) {
	cats := NewCategorySet(10, 20)
	in := Summary{SectionID: 1, Date: "2021-01-31", Values: Values{10: Float(0), 20: Float(2.5)}}

	daily := ToDaily(in.SectionID, in.Date, cats, in)
	out := ToSummary(in.SectionID, in.Date, cats, &daily)
	assertValues(t, out.Values, in.Values)
}

func TestCodecDoesNotAliasValues(t *testing.T) {
	cats := NewCategorySet(1)
	v := Float(3)
	daily := ToDaily(1, "2020-01-01", cats, Summary{Values: Values{1: v}})
	*v = 100
	if *daily.CategoryValues[0] != 3 {
		t.Fatalf("expected stored value to be copied, got %v", *daily.CategoryValues[0])
	}
}

func TestSummaryJSONShape(t *testing.T) {
	summary := Summary{SectionID: 3, Date: "2020-07-04", Values: Values{1: Float(11), 2: nil}}
	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"sectionId":3,"date":"2020-07-04","values":{"1":11,"2":null}}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}

	var decoded Summary
	if err := json.Unmarshal([]byte(want), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assertValues(t, decoded.Values, summary.Values)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		input   string
		wantErr bool
	}{
		{"2020-07-04", false},
		{"2020-02-29", false},
		{"2021-02-29", true},
		{"2020-7-4", true},
		{"07/04/2020", true},
		{"", true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			_, err := ParseDate(tc.input)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
		})
	}
}

func TestMonthStart(t *testing.T) {
	if got, want := MonthStart("2020-07-04"), "2020-07-01"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got, want := MonthStart("2020-12-31"), "2020-12-01"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
