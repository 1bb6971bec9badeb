// =============================================================================
// Weighing Report - Filter Evaluator
// =============================================================================
//
// Filter narrows the record store to the records an operator asked for.
// Two predicates are ANDed:
//   - product name contains the search text (case-insensitive)
//   - timestamp lies in [range.Start, endOfDay(range.End)]
//
// The result keeps the relative order of the input and never aliases it.
//
// =============================================================================

package report

import (
	"strings"
	"time"

	"github.com/ginjaninja78/weighing-report/internal/types"
)

// Filter returns the records matching criteria, in input order.
func Filter(records []types.Record, criteria types.FilterCriteria) []types.Record {
	needle := strings.ToLower(criteria.Search)

	var start, end time.Time
	if criteria.Range != nil {
		start = criteria.Range.Start
		end = EndOfDay(criteria.Range.End)
	}

	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.ProductName), needle) {
			continue
		}
		if criteria.Range != nil && (r.Timestamp.Before(start) || r.Timestamp.After(end)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
