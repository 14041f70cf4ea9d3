package stats

import "testing"

func TestDailySummariesSortedBySectionThenDate(t *testing.T) {
	sections := []SectionData{
		{
			SectionID:  2,
			Categories: NewCategorySet(5),
			Dailies: []Daily{
				{SectionID: 2, Date: "2020-07-02", CategoryIDs: []int64{5}, CategoryValues: []*float64{Float(1)}},
				{SectionID: 2, Date: "2020-07-01", CategoryIDs: []int64{5}, CategoryValues: []*float64{Float(2)}},
			},
		},
		{
			SectionID:  1,
			Categories: NewCategorySet(3, 4),
			Dailies: []Daily{
				{SectionID: 1, Date: "2020-07-03", CategoryIDs: []int64{3}, CategoryValues: []*float64{nil}},
			},
		},
	}

	got := DailySummaries(sections)
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}

	want := []struct {
		section int64
		date    string
	}{{1, "2020-07-03"}, {2, "2020-07-01"}, {2, "2020-07-02"}}
	for i, w := range want {
		if got[i].SectionID != w.section || got[i].Date != w.date {
			t.Fatalf("position %d: expected (%d, %s), got (%d, %s)", i, w.section, w.date, got[i].SectionID, got[i].Date)
		}
	}

	assertValues(t, got[0].Values, Values{3: nil, 4: nil})
}

func TestMonthlySummariesSumsWithNullAsZero(t *testing.T) {
	sections := []SectionData{{
		SectionID:  1,
		Categories: NewCategorySet(1, 2, 3),
		Dailies: []Daily{
			{Date: "2020-07-01", CategoryIDs: []int64{1, 2}, CategoryValues: []*float64{Float(1), nil}},
			{Date: "2020-07-15", CategoryIDs: []int64{1, 2}, CategoryValues: []*float64{Float(2), nil}},
			{Date: "2020-07-31", CategoryIDs: []int64{1, 9}, CategoryValues: []*float64{nil, Float(100)}},
			{Date: "2020-08-01", CategoryIDs: []int64{3}, CategoryValues: []*float64{Float(7)}},
		},
	}}

	got := MonthlySummaries(sections)
	if len(got) != 2 {
		t.Fatalf("expected 2 monthly summaries, got %d", len(got))
	}

	if got[0].Date != "2020-07-01" || got[1].Date != "2020-08-01" {
		t.Fatalf("expected month starts, got %s and %s", got[0].Date, got[1].Date)
	}

	assertValues(t, got[0].Values, Values{1: Float(3), 2: Float(0), 3: Float(0)})
	assertValues(t, got[1].Values, Values{1: Float(0), 2: Float(0), 3: Float(7)})
}

func TestMonthlySummariesSeparateSections(t *testing.T) {
	sections := []SectionData{
		{SectionID: 2, Categories: NewCategorySet(20), Dailies: []Daily{
			{Date: "2020-01-10", CategoryIDs: []int64{20}, CategoryValues: []*float64{Float(4)}},
		}},
		{SectionID: 1, Categories: NewCategorySet(10), Dailies: []Daily{
			{Date: "2020-01-10", CategoryIDs: []int64{10}, CategoryValues: []*float64{Float(6)}},
			{Date: "2020-01-11", CategoryIDs: []int64{10}, CategoryValues: []*float64{Float(6)}},
		}},
	}

	got := MonthlySummaries(sections)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].SectionID != 1 || got[1].SectionID != 2 {
		t.Fatalf("expected section order 1, 2; got %d, %d", got[0].SectionID, got[1].SectionID)
	}
	assertValues(t, got[0].Values, Values{10: Float(12)})
	assertValues(t, got[1].Values, Values{20: Float(4)})
}

func TestMonthlySummariesEmpty(t *testing.T) {
	got := MonthlySummaries([]SectionData{{SectionID: 1, Categories: NewCategorySet(1)}})
	if len(got) != 0 {
		t.Fatalf("expected no summaries, got %v", got)
	}
}
