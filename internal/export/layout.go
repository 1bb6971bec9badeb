// =============================================================================
// Weighing Report - Page Layout
// =============================================================================
//
// The PDF is laid out in two phases so that every page can carry
// "Page i of N" without knowing N up front:
//
//   PHASE 1  Place(block) ... Place(block)
//            Blocks are assigned to pages by height. Nothing is drawn.
//
//   PHASE 2  Finalize(N)
//            N is now known. Every page is stamped with its running footer
//            and the layout is frozen.
//
// Drawing (pdf.go) only starts after Finalize, from the frozen pages.
//
// PAGE RULES:
//   - Table rows that do not fit start a new page, and the table header is
//     repeated at the top of it.
//   - A table header is never left alone at the bottom of a page.
//   - The totals row is part of the table and follows the same rules.
//   - The signature block is kept together.
//
// =============================================================================

package export

import (
	"errors"
	"fmt"
)

var (
	// ErrFinalized is returned when the layout is changed after Finalize.
	ErrFinalized = errors.New("layout already finalized")

	// ErrPageCountMismatch is returned when Finalize is given a page count
	// other than the number of laid-out pages.
	ErrPageCountMismatch = errors.New("page count does not match layout")

	// ErrBlockTooTall is returned for a block that cannot fit on any page.
	ErrBlockTooTall = errors.New("block taller than a page")
)

// =============================================================================
// PAGE SPEC
// =============================================================================

// PageSpec holds page geometry and block heights, in millimetres.
type PageSpec struct {
	Width, Height float64
	Top, Bottom   float64
	Left, Right   float64

	// Slack is left unused at the bottom of every page so that rounding in
	// the drawing backend never spills a page.
	Slack float64

	FooterHeight    float64
	TitleHeight     float64
	HeaderHeight    float64
	RowHeight       float64
	TotalsHeight    float64
	SignatureHeight float64
}

// A4 is the report page: 210x297mm, 14mm sides.
func A4() PageSpec {
	return PageSpec{
		Width:           210,
		Height:          297,
		Top:             9,
		Bottom:          6,
		Left:            14,
		Right:           14,
		Slack:           1,
		FooterHeight:    6,
		TitleHeight:     titleBlockHeight,
		HeaderHeight:    8,
		RowHeight:       7,
		TotalsHeight:    8,
		SignatureHeight: signatureBlockHeight,
	}
}

// ContentHeight is the height available to blocks on one page.
func (s PageSpec) ContentHeight() float64 {
	return s.Height - s.Top - s.Bottom - s.Slack - s.FooterHeight
}

// ContentWidth is the width between the side margins.
func (s PageSpec) ContentWidth() float64 {
	return s.Width - s.Left - s.Right
}

// =============================================================================
// BLOCKS AND PAGES
// =============================================================================

// BlockKind identifies what a block draws.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockTableHeader
	BlockTableRow
	BlockTableTotals
	BlockSignature
)

func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockTableHeader:
		return "table-header"
	case BlockTableRow:
		return "table-row"
	case BlockTableTotals:
		return "table-totals"
	case BlockSignature:
		return "signature"
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

// Block is one unit of layout.
type Block struct {
	Kind   BlockKind
	Height float64

	// Row is the record index for BlockTableRow.
	Row int
}

// Footer is the running footer of one page.
type Footer struct {
	Left  string
	Right string
}

// Page is one physical page after layout.
type Page struct {
	Number int
	Blocks []Block
	Used   float64
	Footer Footer
}

// =============================================================================
// LAYOUT
// =============================================================================

// Layout assigns blocks to pages.
type Layout struct {
	spec      PageSpec
	pages     []*Page
	inTable   bool
	header    Block
	finalized bool
}

// NewLayout starts a layout with one empty page.
func NewLayout(spec PageSpec) *Layout {
	l := &Layout{spec: spec}
	l.newPage()
	return l
}

// PageCount is the number of pages laid out so far.
func (l *Layout) PageCount() int { return len(l.pages) }

// Place appends a block, opening new pages as needed.
func (l *Layout) Place(b Block) error {
	if l.finalized {
		return ErrFinalized
	}
	if b.Height > l.spec.ContentHeight() {
		return fmt.Errorf("%w: %s needs %.1fmm, page has %.1fmm", ErrBlockTooTall, b.Kind, b.Height, l.spec.ContentHeight())
	}

	switch b.Kind {
	case BlockTableHeader:
		// keep the header with at least one row
		if !l.fits(b.Height + l.spec.RowHeight) {
			l.newPage()
		}
		l.inTable = true
		l.header = b
		l.add(b)

	case BlockTableRow, BlockTableTotals:
		if !l.fits(b.Height) {
			l.newPage()
			if l.inTable {
				l.add(l.header)
			}
		}
		l.add(b)
		if b.Kind == BlockTableTotals {
			l.inTable = false
		}

	default:
		if !l.fits(b.Height) {
			l.newPage()
		}
		l.add(b)
	}
	return nil
}

// Finalize stamps every page with its running footer. totalPages must equal
// PageCount. After Finalize the layout is read-only.
func (l *Layout) Finalize(totalPages int, printed string) ([]Page, error) {
	if l.finalized {
		return nil, ErrFinalized
	}
	if totalPages != len(l.pages) {
		return nil, fmt.Errorf("%w: got %d, laid out %d", ErrPageCountMismatch, totalPages, len(l.pages))
	}
	l.finalized = true

	out := make([]Page, len(l.pages))
	for i, p := range l.pages {
		p.Footer = Footer{
			Left:  "Printed: " + printed,
			Right: fmt.Sprintf("Page %d of %d", p.Number, totalPages),
		}
		out[i] = *p
		out[i].Blocks = append([]Block(nil), p.Blocks...)
	}
	return out, nil
}

func (l *Layout) current() *Page { return l.pages[len(l.pages)-1] }

func (l *Layout) fits(h float64) bool {
	return l.current().Used+h <= l.spec.ContentHeight()
}

func (l *Layout) add(b Block) {
	p := l.current()
	p.Blocks = append(p.Blocks, b)
	p.Used += b.Height
}

func (l *Layout) newPage() {
	// an untouched first page is reused
	if n := len(l.pages); n > 0 && len(l.pages[n-1].Blocks) == 0 {
		return
	}
	l.pages = append(l.pages, &Page{Number: len(l.pages) + 1})
}
