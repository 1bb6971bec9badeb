package report

import (
	"slices"

	"github.com/ginjaninja78/weighing-report/internal/types"
)

// PageSizes are the page sizes an operator may choose from.
var PageSizes = []int{10, 25, 50, 75, 100}

// DefaultPageSize is used when no size was chosen.
const DefaultPageSize = 25

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices records to the requested window.
//
// The window is not clamped: an index outside [1, TotalPages] yields an empty
// slice with DisplayStart and DisplayEnd both 0, as for an empty set.
// Callers that hold page state clamp it themselves (see View).
func Paginate(records []types.Record, window types.PageWindow) ([]types.Record, types.PageMeta) {
	size := window.Size
	if size < 1 {
		size = DefaultPageSize
	}
	n := len(records)

	meta := types.PageMeta{
		Total:      n,
		TotalPages: TotalPages(n, size),
	}

	lo := (window.Index - 1) * size
	if window.Index < 1 || lo >= n {
		return []types.Record{}, meta
	}
	hi := min(lo+size, n)
	meta.DisplayStart = lo + 1
	meta.DisplayEnd = hi
	return slices.Clone(records[lo:hi]), meta
}
