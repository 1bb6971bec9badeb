package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

type memLoader struct {
	records []types.Record
	err     error
}

func (l memLoader) Load(context.Context, source.Query) ([]types.Record, error) {
	return l.records, l.err
}

func fixture(n int) []types.Record {
	loc := format.Default().Location()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, loc)
	out := make([]types.Record, n)
	for i := range out {
		out[i] = types.Record{
			ID:          int64(i + 1),
			ProductName: []string{"Kopi", "Gula", "Beras"}[i%3],
			Weight:      1,
			UnitPrice:   1000,
			TotalValue:  1000,
			Timestamp:   base.Add(time.Duration(i) * 6 * time.Hour),
		}
	}
	return out
}

func newRouter(t *testing.T, loader source.Loader) http.Handler {
	t.Helper()
	svc := exporter.NewService(loader, export.DefaultOptions(), utils.NewFileManager(t.TempDir()), nil)
	return NewRouter(NewHandler(svc, 10, nil), nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, newRouter(t, memLoader{}), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestViewPaginates(t *testing.T) {
	h := newRouter(t, memLoader{records: fixture(30)})

	w := get(t, h, "/api/laporan?search=kopi&page=2")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.TotalPages)
	assert.Equal(t, 1, resp.Page, "page is clamped")
	assert.Len(t, resp.Rows, 10)
	assert.Equal(t, 1, resp.Rows[0].No)
	assert.Equal(t, "Kopi", resp.Rows[0].ProductName)
	assert.Equal(t, "01 Januari 2024 pukul 08.00 WIB", resp.Rows[0].WaktuDisplay)
	assert.InDelta(t, 10000, resp.Totals.TotalValue, 1e-9)
}

func TestViewRangeAndSort(t *testing.T) {
	h := newRouter(t, memLoader{records: fixture(30)})

	w := get(t, h, "/api/laporan?from=2024-01-02&to=2024-01-02&sort=waktu-desc&size=25")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 4)
	assert.Equal(t, int64(7), resp.Rows[0].ID)
	assert.Equal(t, int64(4), resp.Rows[3].ID)
	assert.Equal(t, "waktu-desc", resp.Sort)
	assert.Equal(t, 25, resp.Size)
}

func TestViewBadRequests(t *testing.T) {
	h := newRouter(t, memLoader{records: fixture(3)})
	for _, target := range []string{
		"/api/laporan?size=20",
		"/api/laporan?size=abc",
		"/api/laporan?page=x",
		"/api/laporan?sort=harga",
		"/api/laporan?from=2024-13-01",
		"/api/laporan?from=2024-01-05&to=2024-01-01",
	} {
		assert.Equal(t, http.StatusBadRequest, get(t, h, target).Code, target)
	}
}

func TestViewUnauthorized(t *testing.T) {
	h := newRouter(t, memLoader{err: source.ErrUnauthorized})
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/api/laporan").Code)
}

func TestExportDownloads(t *testing.T) {
	h := newRouter(t, memLoader{records: fixture(5)})

	w := get(t, h, "/api/laporan/export.xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Laporan_Penimbangan.xlsx"`, w.Header().Get("Content-Disposition"))

	w = get(t, h, "/api/laporan/export.pdf?search=gula")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-", w.Body.String()[:5])
}

func TestExportEmptyIsNoContent(t *testing.T) {
	h := newRouter(t, memLoader{records: fixture(5)})
	w := get(t, h, "/api/laporan/export.pdf?search=teh")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
