package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/weighing-report/internal/export"
	"github.com/ginjaninja78/weighing-report/internal/exporter"
	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/source"
	"github.com/ginjaninja78/weighing-report/internal/types"
	"github.com/ginjaninja78/weighing-report/pkg/utils"
)

type memLoader []types.Record

func (l memLoader) Load(context.Context, source.Query) ([]types.Record, error) { return l, nil }

func jakarta() *time.Location { return format.Default().Location() }

func records() memLoader {
	loc := jakarta()
	return memLoader{
		{ID: 1, ProductName: "Kopi", Weight: 1, UnitPrice: 1000, TotalValue: 1000, Timestamp: time.Date(2024, 1, 1, 23, 30, 0, 0, loc)},
		{ID: 2, ProductName: "Gula", Weight: 2, UnitPrice: 1000, TotalValue: 2000, Timestamp: time.Date(2024, 1, 2, 15, 0, 0, 0, loc)},
		{ID: 3, ProductName: "Teh", Weight: 3, UnitPrice: 1000, TotalValue: 3000, Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, loc)},
		{ID: 4, ProductName: "Beras", Weight: 4, UnitPrice: 1000, TotalValue: 4000, Timestamp: time.Date(2024, 1, 3, 0, 0, 0, 0, loc)},
	}
}

func newScheduler(t *testing.T, loader source.Loader) (*Scheduler, string) {
	t.Helper()
	dir := t.TempDir()
	svc := exporter.NewService(loader, export.DefaultOptions(), utils.NewFileManager(dir), nil)
	s, err := New(svc, Options{Schedule: "5 0 * * *", Location: jakarta()}, nil)
	require.NoError(t, err)
	return s, dir
}

func TestPreviousDay(t *testing.T) {
	loc := jakarta()
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"just after midnight", time.Date(2024, 1, 3, 0, 5, 0, 0, loc), time.Date(2024, 1, 2, 0, 0, 0, 0, loc)},
		{"utc evening is next day in jakarta", time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, loc)},
		{"year boundary", time.Date(2024, 1, 1, 9, 0, 0, 0, loc), time.Date(2023, 12, 31, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(PreviousDay(tt.now, loc)), PreviousDay(tt.now, loc))
		})
	}
}

func TestRunOnceExportsPreviousDay(t *testing.T) {
	s, dir := newScheduler(t, records())

	summary, err := s.RunOnce(context.Background(), time.Date(2024, 1, 3, 0, 5, 0, 0, jakarta()))
	require.NoError(t, err)
	assert.False(t, summary.Skipped)
	assert.Equal(t, 2, summary.Records)
	require.Len(t, summary.Saved, 2)

	xlsx := filepath.Join(dir, "Laporan_Penimbangan_2024-01-02.xlsx")
	assert.Equal(t, xlsx, summary.Saved[0].Path)
	assert.Equal(t, filepath.Join(dir, "Laporan_Penimbangan_2024-01-02.pdf"), summary.Saved[1].Path)
	assert.True(t, utils.FileExists(xlsx))

	file, err := os.Open(xlsx)
	require.NoError(t, err)
	defer file.Close()
	rows, err := export.ReadSheet(file, export.DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Teh", rows[1][1], "oldest first")
	assert.Equal(t, "Gula", rows[2][1])
}

func TestRunOnceSkipsEmptyDay(t *testing.T) {
	s, dir := newScheduler(t, records())

	summary, err := s.RunOnce(context.Background(), time.Date(2024, 2, 1, 1, 0, 0, 0, jakarta()))
	require.NoError(t, err)
	assert.True(t, summary.Skipped)
	assert.Empty(t, summary.Saved)

	matches, _ := filepath.Glob(filepath.Join(dir, "*"))
	assert.Empty(t, matches)
}

func TestNewRejectsBadSchedule(t *testing.T) {
	svc := exporter.NewService(records(), export.DefaultOptions(), utils.NewFileManager(t.TempDir()), nil)
	_, err := New(svc, Options{Schedule: "every day"}, nil)
	assert.Error(t, err)
}

func TestCustomNameFormat(t *testing.T) {
	dir := t.TempDir()
	svc := exporter.NewService(records(), export.DefaultOptions(), utils.NewFileManager(dir), nil)
	s, err := New(svc, Options{Schedule: "@daily", NameFormat: "harian_{date}", Location: jakarta()}, nil)
	require.NoError(t, err)

	summary, err := s.RunOnce(context.Background(), time.Date(2024, 1, 3, 6, 0, 0, 0, jakarta()))
	require.NoError(t, err)
	require.Len(t, summary.Saved, 2)
	assert.Equal(t, "harian_2024-01-02.pdf", filepath.Base(summary.Saved[1].Path))
}
