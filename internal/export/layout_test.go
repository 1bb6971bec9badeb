package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutReport(t *testing.T, spec PageSpec, rows int) *Layout {
	t.Helper()
	l := NewLayout(spec)
	require.NoError(t, l.Place(Block{Kind: BlockTitle, Height: spec.TitleHeight}))
	require.NoError(t, l.Place(Block{Kind: BlockTableHeader, Height: spec.HeaderHeight}))
	for i := 0; i < rows; i++ {
		require.NoError(t, l.Place(Block{Kind: BlockTableRow, Height: spec.RowHeight, Row: i}))
	}
	require.NoError(t, l.Place(Block{Kind: BlockTableTotals, Height: spec.TotalsHeight}))
	require.NoError(t, l.Place(Block{Kind: BlockSignature, Height: spec.SignatureHeight}))
	return l
}

func countKind(p Page, k BlockKind) int {
	n := 0
	for _, b := range p.Blocks {
		if b.Kind == k {
			n++
		}
	}
	return n
}

func TestA4Geometry(t *testing.T) {
	spec := A4()
	assert.Equal(t, 182.0, spec.ContentWidth())
	assert.Equal(t, 275.0, spec.ContentHeight())
	assert.Equal(t, 50.0, spec.TitleHeight)
	assert.Equal(t, 61.0, spec.SignatureHeight)
}

func TestLayoutSinglePage(t *testing.T) {
	l := layoutReport(t, A4(), 3)
	require.Equal(t, 1, l.PageCount())

	pages, err := l.Finalize(1, "01 Januari 2024 pukul 10.00 WIB")
	require.NoError(t, err)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.Equal(t, "Printed: 01 Januari 2024 pukul 10.00 WIB", p.Footer.Left)
	assert.Equal(t, "Page 1 of 1", p.Footer.Right)
	assert.InDelta(t, 50+8+3*7+8+61, p.Used, 1e-9)
	assert.Equal(t, BlockTitle, p.Blocks[0].Kind)
	assert.Equal(t, BlockSignature, p.Blocks[len(p.Blocks)-1].Kind)
}

func TestLayoutRepeatsHeaderAndStampsEveryPage(t *testing.T) {
	spec := A4()
	l := layoutReport(t, spec, 100)
	n := l.PageCount()
	require.Greater(t, n, 2)

	pages, err := l.Finalize(n, "x")
	require.NoError(t, err)

	rows := 0
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.LessOrEqual(t, p.Used, spec.ContentHeight())
		assert.Equal(t, fmt.Sprintf("Page %d of %d", i+1, n), p.Footer.Right)

		if countKind(p, BlockTableRow) > 0 {
			assert.Equal(t, 1, countKind(p, BlockTableHeader), "page %d", p.Number)
			first := p.Blocks[0].Kind
			if i > 0 {
				assert.Equal(t, BlockTableHeader, first, "page %d", p.Number)
			}
		}
		rows += countKind(p, BlockTableRow)
	}
	assert.Equal(t, 100, rows)

	// rows keep their order across pages
	next := 0
	for _, p := range pages {
		for _, b := range p.Blocks {
			if b.Kind == BlockTableRow {
				assert.Equal(t, next, b.Row)
				next++
			}
		}
	}
}

func TestLayoutPageBreaks(t *testing.T) {
	spec := A4()
	// page 1: 275 - 50 title - 8 header = 217 -> 31 rows
	// page 2+: 275 - 8 header = 267 -> 38 rows
	l := layoutReport(t, spec, 31)
	pages, err := l.Finalize(l.PageCount(), "x")
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, 31, countKind(pages[0], BlockTableRow))
	// totals move to page 2 under a repeated header, signature follows
	assert.Equal(t, []BlockKind{BlockTableHeader, BlockTableTotals, BlockSignature}, kinds(pages[1]))
}

func TestLayoutKeepsSignatureTogether(t *testing.T) {
	spec := A4()
	// page 1 after 22 rows: 50+8+154+8 = 220, 55mm left < 61
	l := layoutReport(t, spec, 22)
	pages, err := l.Finalize(l.PageCount(), "x")
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, []BlockKind{BlockSignature}, kinds(pages[1]))
}

func TestLayoutFinalizeErrors(t *testing.T) {
	l := layoutReport(t, A4(), 1)

	_, err := l.Finalize(2, "x")
	assert.ErrorIs(t, err, ErrPageCountMismatch)

	_, err = l.Finalize(1, "x")
	require.NoError(t, err)

	_, err = l.Finalize(1, "x")
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, l.Place(Block{Kind: BlockTableRow, Height: 7}), ErrFinalized)
}

func TestLayoutRejectsOversizedBlock(t *testing.T) {
	l := NewLayout(A4())
	err := l.Place(Block{Kind: BlockSignature, Height: 500})
	assert.ErrorIs(t, err, ErrBlockTooTall)
}

func kinds(p Page) []BlockKind {
	out := make([]BlockKind, len(p.Blocks))
	for i, b := range p.Blocks {
		out[i] = b.Kind
	}
	return out
}
