package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/report"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

func TestFilterFlagsRequest(t *testing.T) {
	f := format.Default()
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, f.Location()) }

	tests := []struct {
		name      string
		flags     filterFlags
		wantRange *types.DateRange
		wantSort  types.SortSpec
		wantErr   bool
	}{
		{name: "no filters", flags: filterFlags{search: "kopi"}},
		{name: "range", flags: filterFlags{from: "2024-01-02", to: "2024-01-05"}, wantRange: &types.DateRange{Start: day(2), End: day(5)}},
		{name: "only from is one day", flags: filterFlags{from: "2024-01-03"}, wantRange: &types.DateRange{Start: day(3), End: day(3)}},
		{name: "only to is one day", flags: filterFlags{to: "2024-01-04"}, wantRange: &types.DateRange{Start: day(4), End: day(4)}},
		{name: "sort", flags: filterFlags{sort: "nama-desc"}, wantSort: types.SortNameDesc},
		{name: "reversed range", flags: filterFlags{from: "2024-01-05", to: "2024-01-01"}, wantErr: true},
		{name: "bad date", flags: filterFlags{from: "05/01/2024"}, wantErr: true},
		{name: "bad sort", flags: filterFlags{sort: "harga"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.flags.request(f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.flags.search, req.Criteria.Search)
			assert.Equal(t, tt.wantSort, req.Sort)
			if tt.wantRange == nil {
				assert.Nil(t, req.Criteria.Range)
				return
			}
			require.NotNil(t, req.Criteria.Range)
			assert.True(t, tt.wantRange.Start.Equal(req.Criteria.Range.Start))
			assert.True(t, tt.wantRange.End.Equal(req.Criteria.Range.End))
		})
	}
}

func TestPageLine(t *testing.T) {
	assert.Equal(t, "[1]", pageLine(report.PageButtons(1, 1)))
	assert.Equal(t, "1 ... 4 [5] 6 ... 10", pageLine(report.PageButtons(5, 10)))
	assert.Equal(t, "1 2 [3] 4", pageLine(report.PageButtons(3, 4)))
}
