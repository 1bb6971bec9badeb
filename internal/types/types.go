// =============================================================================
// Weighing Report - Shared Types
// =============================================================================
//
// This package contains the types that flow through the report pipeline.
// They live here so that the report, export, source and server packages can
// share them without importing each other:
//   - report  : filter / sort / paginate / aggregate
//   - export  : spreadsheet and PDF rendering
//   - source  : decoding upstream records
//   - server  : JSON view of a page window
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// RECORD
// =============================================================================

// Record is one weighing transaction.
//
// TotalValue is carried as received from upstream. It is never recomputed
// from Weight * UnitPrice.
type Record struct {
	// ID is unique within one snapshot.
	ID int64

	// ProductName is the weighed product ("nama_produk").
	ProductName string

	// Weight in kilograms ("berat").
	Weight float64

	// UnitPrice per kilogram ("harga_per_kg").
	UnitPrice float64

	// TotalValue as stored upstream ("total_harga").
	TotalValue float64

	// Timestamp of the weighing ("waktu"), already placed in the display
	// location by the decoder.
	Timestamp time.Time
}

// =============================================================================
// FILTER CRITERIA
// =============================================================================

// DateRange is an inclusive range of calendar days.
// End is extended to the last instant of its day when filtering.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FilterCriteria selects records by product name and date.
type FilterCriteria struct {
	// Search is matched case-insensitively against the product name.
	// Empty matches everything.
	Search string

	// Range is optional. nil means every date passes.
	Range *DateRange
}

// =============================================================================
// SORT SPEC
// =============================================================================

// SortSpec names the single active sort axis.
type SortSpec int

const (
	SortNone SortSpec = iota
	SortTimeAsc
	SortTimeDesc
	SortNameAsc
	SortNameDesc
)

var sortNames = map[SortSpec]string{
	SortNone:     "none",
	SortTimeAsc:  "waktu-asc",
	SortTimeDesc: "waktu-desc",
	SortNameAsc:  "nama-asc",
	SortNameDesc: "nama-desc",
}

// String returns the flag/query form of the sort spec.
func (s SortSpec) String() string {
	if name, ok := sortNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortSpec(%d)", int(s))
}

// ParseSortSpec parses the flag/query form. The empty string is SortNone.
func ParseSortSpec(s string) (SortSpec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNone, nil
	}
	for spec, name := range sortNames {
		if name == s {
			return spec, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort %q (want one of none, waktu-asc, waktu-desc, nama-asc, nama-desc)", s)
}

// =============================================================================
// PAGINATION
// =============================================================================

// PageWindow is a page size and a 1-based page index.
type PageWindow struct {
	Size  int
	Index int
}

// PageMeta describes the window relative to the filtered set.
// DisplayStart and DisplayEnd are 1-based and both 0 for an empty set.
type PageMeta struct {
	Total        int `json:"total"`
	TotalPages   int `json:"total_pages"`
	DisplayStart int `json:"display_start"`
	DisplayEnd   int `json:"display_end"`
}

// =============================================================================
// AGGREGATES AND SNAPSHOTS
// =============================================================================

// AggregateTotals are sums over the whole filtered set.
type AggregateTotals struct {
	TotalWeight float64 `json:"total_berat"`
	TotalValue  float64 `json:"total_harga"`
}

// Snapshot is the frozen input of one export: the filtered and sorted
// records, their totals, and the generation time.
type Snapshot struct {
	Records     []Record
	Totals      AggregateTotals
	GeneratedAt time.Time
}
