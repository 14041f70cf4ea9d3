package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tallykeep/tally/internal/stats"
)

// Range is an inclusive pair of canonical dates.
type Range struct {
	From string
	To   string
}

// ResolveRange picks the query range. A month (YYYY-MM) expands to its first and last day and
// cannot be combined with from/to. Otherwise both from and to are required.
func ResolveRange(from, to, month string) (Range, error) {
	if month != "" {
		if from != "" || to != "" {
			return Range{}, fmt.Errorf("month cannot be combined with from/to")
		}
		start, err := time.Parse("2006-01", month)
		if err != nil || start.Format("2006-01") != month {
			return Range{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		end := start.AddDate(0, 1, -1)
		return Range{From: start.Format(stats.DateLayout), To: end.Format(stats.DateLayout)}, nil
	}

	if from == "" || to == "" {
		return Range{}, fmt.Errorf("both from and to are required (or use month)")
	}
	fromDate, err := stats.ParseDate(from)
	if err != nil {
		return Range{}, err
	}
	toDate, err := stats.ParseDate(to)
	if err != nil {
		return Range{}, err
	}
	if toDate.Before(fromDate) {
		return Range{}, fmt.Errorf("range end %s is before start %s", to, from)
	}
	return Range{From: from, To: to}, nil
}

// ParseValues reads category assignments of the form <categoryId>=<number|null>.
func ParseValues(pairs []string) (stats.Values, error) {
	values := make(stats.Values, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid value %q: expected <categoryId>=<number|null>", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid category id %q", key)
		}
		if _, dup := values[id]; dup {
			return nil, fmt.Errorf("category %d assigned more than once", id)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.EqualFold(raw, "null") {
			values[id] = nil
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for category %d", raw, id)
		}
		values[id] = stats.Float(v)
	}
	return values, nil
}

// StringKeyed converts values to the JSON-facing map keyed by decimal category id.
func StringKeyed(values stats.Values) map[string]*float64 {
	out := make(map[string]*float64, len(values))
	for id, v := range values {
		out[strconv.FormatInt(id, 10)] = v
	}
	return out
}

// FromStringKeyed is the inverse of StringKeyed. Keys that are not integers are rejected.
func FromStringKeyed(in map[string]*float64) (stats.Values, error) {
	out := make(stats.Values, len(in))
	for key, v := range in {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q", key)
		}
		out[id] = v
	}
	return out, nil
}
