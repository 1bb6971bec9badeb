package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/report"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

func snapshot(n int) types.Snapshot {
	f := format.Default()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, f.Location())
	records := make([]types.Record, n)
	for i := range records {
		records[i] = types.Record{
			ID:          int64(i + 1),
			ProductName: fmt.Sprintf("Produk %d", i+1),
			Weight:      2.5,
			UnitPrice:   20000,
			TotalValue:  50000,
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
		}
	}
	return types.Snapshot{
		Records:     records,
		Totals:      report.Aggregate(records),
		GeneratedAt: base.Add(48 * time.Hour),
	}
}

func TestSpreadsheet(t *testing.T) {
	snap := snapshot(3)
	snap.Records[1].ProductName = "Gula"

	doc, err := Spreadsheet(snap, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Laporan_Penimbangan.xlsx", doc.Name)
	assert.Equal(t, ContentTypeXLSX, doc.ContentType)
	assert.Equal(t, 3, doc.Rows)

	rows, err := ReadDocument(doc, "Laporan")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, SheetColumns, rows[0])
	assert.Equal(t, []string{"1", "Produk 1", "2.5", "20000", "50000", "01 Januari 2024 pukul 10.00 WIB"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "Gula", rows[2][1])
	assert.Equal(t, "3", rows[3][0])
}

func TestSpreadsheetIsFreshEachCall(t *testing.T) {
	snap := snapshot(2)
	first, err := Spreadsheet(snap, DefaultOptions())
	require.NoError(t, err)

	snap.Records = snap.Records[:1]
	second, err := Spreadsheet(snap, DefaultOptions())
	require.NoError(t, err)

	rows, err := ReadDocument(first, "")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = ReadDocument(second, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadSheetUnknownSheet(t *testing.T) {
	doc, err := Spreadsheet(snapshot(1), DefaultOptions())
	require.NoError(t, err)

	_, err = ReadSheet(bytes.NewReader(doc.Bytes), "Sheet1")
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	doc, err := PDF(snapshot(2), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Laporan_Penimbangan.pdf", doc.Name)
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, 2, doc.Rows)
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))
}

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func TestPDFMultiPage(t *testing.T) {
	tests := []struct {
		rows  int
		pages int
	}{
		{1, 1},
		{21, 1},
		{22, 2},
		{31, 2},
		{100, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows", tt.rows), func(t *testing.T) {
			doc, err := PDF(snapshot(tt.rows), DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.pages, doc.Pages)
			assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))

			// the drawn document has exactly the laid-out pages
			assert.Len(t, pageObject.FindAll(doc.Bytes, -1), tt.pages)
			last := fmt.Sprintf("(Page %d of %d)", tt.pages, tt.pages)
			assert.Contains(t, string(doc.Bytes), last)
		})
	}
}

const longName = "Beras Premium Super Wangi Pandan Cianjur 25kg Karung"

func TestWrapLines(t *testing.T) {
	width := cellWidth(A4(), tableGrid[1])

	assert.Equal(t, []string{"Produk 1"}, wrapLines("Produk 1", width, bodyTextSize))
	assert.Equal(t,
		[]string{"Beras Premium Super ", "Wangi Pandan Cianjur ", "25kg Karung "},
		wrapLines(longName, width, bodyTextSize))
}

func TestRowHeightGrowsWithWrappedText(t *testing.T) {
	spec := A4()
	snap := snapshot(2)
	snap.Records[1].ProductName = longName
	opts := DefaultOptions()

	assert.Equal(t, spec.RowHeight, rowHeight(spec, rowValues(snap, 0, opts), bodyTextSize))
	assert.InDelta(t, 3*lineHeight(bodyTextSize)+2*cellPadding,
		rowHeight(spec, rowValues(snap, 1, opts), bodyTextSize), 1e-9)
}

func TestPDFWrappedRowsTakeMorePages(t *testing.T) {
	short, err := PDF(snapshot(20), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, short.Pages)

	snap := snapshot(20)
	for i := range snap.Records {
		snap.Records[i].ProductName = longName
	}
	long, err := PDF(snap, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, long.Pages)
	assert.Len(t, pageObject.FindAll(long.Bytes, -1), 2)
	assert.Contains(t, string(long.Bytes), "(Page 2 of 2)")
}

func TestEmptySnapshotIsNoOp(t *testing.T) {
	empty := types.Snapshot{GeneratedAt: time.Now()}

	doc, err := Spreadsheet(empty, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyReport)
	assert.Nil(t, doc)

	doc, err = PDF(empty, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyReport)
	assert.Nil(t, doc)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{DocumentName: "custom.pdf"}.withDefaults()
	assert.Equal(t, "custom.pdf", o.DocumentName)
	assert.Equal(t, DefaultSpreadsheetName, o.SpreadsheetName)
	assert.Equal(t, "PT. INTERSKALA MANDIRI INDONESIA", o.Organization.Name)
	assert.Len(t, o.Organization.AddressLines, 3)
	assert.NotNil(t, o.Formatter)
	assert.Equal(t, A4(), o.Page)
}

func TestTable(t *testing.T) {
	snap := snapshot(30)
	visible, meta := report.Paginate(snap.Records, types.PageWindow{Size: 10, Index: 3})

	out := Table(visible, meta, snap.Totals, nil)
	for _, want := range []string{
		"Nama Produk",
		"Produk 21",
		"Produk 30",
		"Rp 50.000",
		"Menampilkan 21–30 dari 30 data",
		"Total Berat: 75.00 Kg",
		"Total Harga: Rp 1.500.000",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Produk 20 ")
	assert.Equal(t, 1, strings.Count(out, "Produk 25"))
}
