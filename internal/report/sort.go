package report

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/weighing-report/internal/types"
)

// CollationTag is the locale used to order product names.
var CollationTag = language.Indonesian

// Sort returns a new slice ordered by the single axis named in spec.
// The sort is stable, so records with equal keys keep their input order.
// SortNone returns a copy in input order.
func Sort(records []types.Record, spec types.SortSpec) []types.Record {
	out := slices.Clone(records)
	if out == nil {
		out = []types.Record{}
	}

	switch spec {
	case types.SortTimeAsc:
		slices.SortStableFunc(out, func(a, b types.Record) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	case types.SortTimeDesc:
		slices.SortStableFunc(out, func(a, b types.Record) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
	case types.SortNameAsc, types.SortNameDesc:
		// Collator keeps scratch buffers; one per call.
		c := collate.New(CollationTag)
		sign := 1
		if spec == types.SortNameDesc {
			sign = -1
		}
		slices.SortStableFunc(out, func(a, b types.Record) int {
			return sign * cmp.Compare(c.CompareString(a.ProductName, b.ProductName), 0)
		})
	}
	return out
}
