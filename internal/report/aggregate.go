package report

import "github.com/ginjaninja78/weighing-report/internal/types"

// Aggregate sums weight and stored total value over every given record.
func Aggregate(records []types.Record) types.AggregateTotals {
	var totals types.AggregateTotals
	for _, r := range records {
		totals.TotalWeight += r.Weight
		totals.TotalValue += r.TotalValue
	}
	return totals
}
