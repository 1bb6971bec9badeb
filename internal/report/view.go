// =============================================================================
// Weighing Report - View Controller
// =============================================================================
//
// View holds the operator's transient selections (search, date range, sort,
// page window) over one immutable record snapshot and keeps the derived
// views in step with them.
//
// STATE RULES:
//   - Every change of search, range, sort or page size recomputes the
//     filtered/sorted set immediately and resets the page index to 1.
//   - SetPage clamps into [1, TotalPages].
//   - Totals are always over the whole filtered set, never the visible page.
//
// A View is not safe for concurrent use. The server builds one per request.
//
// =============================================================================

package report

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ginjaninja78/weighing-report/internal/types"
)

// ErrInvalidPageSize is returned for a size outside PageSizes.
var ErrInvalidPageSize = errors.New("invalid page size")

// View is the stateful controller over the pipeline.
type View struct {
	records  []types.Record
	criteria types.FilterCriteria
	sort     types.SortSpec
	window   types.PageWindow

	// derived
	ordered []types.Record
	visible []types.Record
	meta    types.PageMeta
	totals  types.AggregateTotals
}

// NewView creates a view over a copy of records with no filter, no sort,
// the default page size and page 1.
func NewView(records []types.Record) *View {
	v := &View{
		records: slices.Clone(records),
		window:  types.PageWindow{Size: DefaultPageSize, Index: 1},
	}
	v.recompute()
	return v
}

// =============================================================================
// MUTATORS
// =============================================================================

// SetSearch replaces the search text.
func (v *View) SetSearch(search string) {
	v.criteria.Search = search
	v.resetPage()
}

// SetRange sets an inclusive date range.
func (v *View) SetRange(start, end time.Time) {
	v.criteria.Range = &types.DateRange{Start: start, End: end}
	v.resetPage()
}

// ClearRange removes the date range.
func (v *View) ClearRange() {
	v.criteria.Range = nil
	v.resetPage()
}

// SetCriteria replaces search and range at once.
func (v *View) SetCriteria(criteria types.FilterCriteria) {
	if criteria.Range != nil {
		r := *criteria.Range
		criteria.Range = &r
	}
	v.criteria = criteria
	v.resetPage()
}

// SetSort selects the active sort axis.
func (v *View) SetSort(spec types.SortSpec) {
	v.sort = spec
	v.resetPage()
}

// SetPageSize changes the page size. Sizes outside PageSizes are rejected
// and leave the view unchanged.
func (v *View) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return fmt.Errorf("%w: %d (allowed %v)", ErrInvalidPageSize, size, PageSizes)
	}
	v.window.Size = size
	v.resetPage()
	return nil
}

// SetPage moves to page index, clamped into [1, TotalPages].
func (v *View) SetPage(index int) {
	v.window.Index = max(1, min(index, v.meta.TotalPages))
	v.visible, v.meta = Paginate(v.ordered, v.window)
}

// NextPage and PrevPage step the page index within bounds.
func (v *View) NextPage() { v.SetPage(v.window.Index + 1) }
func (v *View) PrevPage() { v.SetPage(v.window.Index - 1) }

// Reset clears search, range and sort and returns to page 1.
// The page size is kept.
func (v *View) Reset() {
	v.criteria = types.FilterCriteria{}
	v.sort = types.SortNone
	v.resetPage()
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (v *View) Criteria() types.FilterCriteria { return v.criteria }
func (v *View) SortSpec() types.SortSpec       { return v.sort }
func (v *View) Window() types.PageWindow       { return v.window }
func (v *View) Meta() types.PageMeta           { return v.meta }
func (v *View) Totals() types.AggregateTotals  { return v.totals }

// Visible returns a copy of the rows on the current page.
func (v *View) Visible() []types.Record { return slices.Clone(v.visible) }

// Filtered returns a copy of the full filtered and sorted set.
func (v *View) Filtered() []types.Record { return slices.Clone(v.ordered) }

// Buttons returns the page-number buttons for the current window.
func (v *View) Buttons() []PageButton {
	return PageButtons(v.window.Index, v.meta.TotalPages)
}

// Snapshot freezes the filtered set and its totals for export.
func (v *View) Snapshot(generatedAt time.Time) types.Snapshot {
	return types.Snapshot{
		Records:     v.Filtered(),
		Totals:      v.totals,
		GeneratedAt: generatedAt,
	}
}

// =============================================================================
// INTERNALS
// =============================================================================

func (v *View) resetPage() {
	v.window.Index = 1
	v.recompute()
}

func (v *View) recompute() {
	filtered := Filter(v.records, v.criteria)
	v.ordered = Sort(filtered, v.sort)
	v.totals = Aggregate(v.ordered)
	v.visible, v.meta = Paginate(v.ordered, v.window)
}

// BuildSnapshot runs filter, sort and aggregate in one go. It is what the
// exporters consume when no interactive view is involved.
func BuildSnapshot(records []types.Record, criteria types.FilterCriteria, spec types.SortSpec, generatedAt time.Time) types.Snapshot {
	ordered := Sort(Filter(records, criteria), spec)
	return types.Snapshot{
		Records:     ordered,
		Totals:      Aggregate(ordered),
		GeneratedAt: generatedAt,
	}
}
