// Package stats provides the data types exchanged between the daily statistics store and its callers,
// and the codec translating between the persisted sparse form and the dense API form.
package stats

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar date format used for keys and range bounds.
const DateLayout = "2006-01-02"

// Values maps every category of a section to its recorded value. A nil value means
// "no entry" and is distinct from a recorded zero.
type Values map[int64]*float64

// Summary is the dense, category-complete representation of one section's values for a
// single date, or for a month when produced by a monthly roll-up.
type Summary struct {
	SectionID int64  `json:"sectionId"`
	Date      string `json:"date"`
	Values    Values `json:"values"`
}

// Daily is the persisted sparse record of a section's values for one date.
// CategoryIDs and CategoryValues are index-aligned.
type Daily struct {
	SectionID      int64
	Date           string
	CategoryIDs    []int64
	CategoryValues []*float64
}

// CategorySet is an ordered set of the category IDs currently valid for a section.
type CategorySet struct {
	ids   []int64
	index map[int64]struct{}
}

// NewCategorySet builds a set preserving the first occurrence order of ids.
func NewCategorySet(ids ...int64) CategorySet {
	set := CategorySet{
		ids:   make([]int64, 0, len(ids)),
		index: make(map[int64]struct{}, len(ids)),
	}
	for _, id := range ids {
		if _, ok := set.index[id]; ok {
			continue
		}
		set.index[id] = struct{}{}
		set.ids = append(set.ids, id)
	}
	return set
}

// IDs returns the category IDs in set order.
func (s CategorySet) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Contains reports whether id belongs to the set.
func (s CategorySet) Contains(id int64) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	return len(s.ids)
}

// Float returns a pointer to v, for building Values literals.
func Float(v float64) *float64 {
	return &v
}

// ParseDate validates that value is a canonical YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	if t.Format(DateLayout) != value {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// MonthStart truncates a canonical date to the first day of its month.
func MonthStart(date string) string {
	if len(date) < len(DateLayout) {
		return date
	}
	return date[:8] + "01"
}
