package stats

// ToSummary expands a persisted daily row into a Summary holding exactly one entry per
// category in cats. A nil daily, or a category missing from it, yields a nil value.
// Category IDs stored in the row that are no longer in cats are dropped.
func ToSummary(sectionID int64, date string, cats CategorySet, daily *Daily) Summary {
	recorded := make(map[int64]*float64)
	if daily != nil {
		for i, id := range daily.CategoryIDs {
			if i >= len(daily.CategoryValues) {
				break
			}
			if _, seen := recorded[id]; seen {
				continue
			}
			recorded[id] = copyValue(daily.CategoryValues[i])
		}
	}

	values := make(Values, cats.Len())
	for _, id := range cats.ids {
		values[id] = recorded[id]
	}

	return Summary{
		SectionID: sectionID,
		Date:      date,
		Values:    values,
	}
}

// ToDaily collapses a Summary into the sparse persisted form. Only keys belonging to cats
// are kept; unknown category IDs are silently dropped. IDs are emitted in cats order.
func ToDaily(sectionID int64, date string, cats CategorySet, summary Summary) Daily {
	daily := Daily{
		SectionID:      sectionID,
		Date:           date,
		CategoryIDs:    make([]int64, 0, cats.Len()),
		CategoryValues: make([]*float64, 0, cats.Len()),
	}

	for _, id := range cats.ids {
		value, ok := summary.Values[id]
		if !ok {
			continue
		}
		daily.CategoryIDs = append(daily.CategoryIDs, id)
		daily.CategoryValues = append(daily.CategoryValues, copyValue(value))
	}

	return daily
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
