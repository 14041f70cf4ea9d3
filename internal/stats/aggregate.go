package stats

import (
	"cmp"
	"slices"
)

// SectionData bundles the rows loaded for one section: its currently valid categories and
// the daily rows that fell inside the requested range.
type SectionData struct {
	SectionID  int64
	Categories CategorySet
	Dailies    []Daily
}

// DailySummaries produces one Summary per daily row, sorted by (section, date).
func DailySummaries(sections []SectionData) []Summary {
	var out []Summary
	for _, section := range sections {
		for i := range section.Dailies {
			daily := &section.Dailies[i]
			out = append(out, ToSummary(section.SectionID, daily.Date, section.Categories, daily))
		}
	}
	SortSummaries(out)
	return out
}

// MonthlySummaries sums daily rows into one Summary per (section, calendar month). The
// returned date is the first of the month. Every valid category starts at zero, and a
// recorded nil contributes zero to the total.
func MonthlySummaries(sections []SectionData) []Summary {
	type monthKey struct {
		sectionID int64
		month     string
	}

	accumulators := make(map[monthKey]*Summary)
	var order []monthKey

	for _, section := range sections {
		for _, daily := range section.Dailies {
			key := monthKey{sectionID: section.SectionID, month: MonthStart(daily.Date)}
			acc, ok := accumulators[key]
			if !ok {
				seeded := ToSummary(key.sectionID, key.month, section.Categories, nil)
				for id := range seeded.Values {
					seeded.Values[id] = Float(0)
				}
				acc = &seeded
				accumulators[key] = acc
				order = append(order, key)
			}

			for i, id := range daily.CategoryIDs {
				total, valid := acc.Values[id]
				if !valid || i >= len(daily.CategoryValues) {
					continue
				}
				if v := daily.CategoryValues[i]; v != nil {
					*total += *v
				}
			}
		}
	}

	out := make([]Summary, 0, len(order))
	for _, key := range order {
		out = append(out, *accumulators[key])
	}
	SortSummaries(out)
	return out
}

// SortSummaries orders summaries ascending by section ID, then by date.
func SortSummaries(summaries []Summary) {
	slices.SortStableFunc(summaries, func(a, b Summary) int {
		if c := cmp.Compare(a.SectionID, b.SectionID); c != 0 {
			return c
		}
		return cmp.Compare(a.Date, b.Date)
	})
}
