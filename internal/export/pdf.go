package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ginjaninja78/weighing-report/internal/types"
)

// gridSize is the number of grid columns across the content width.
const gridSize = 24

// Title block: letterhead row, gap, rule, report title, gap.
const (
	letterheadHeight = 22
	ruleGapHeight    = 10
	ruleHeight       = 4
	reportTitleRow   = 8
	titleGapHeight   = 6

	titleBlockHeight = letterheadHeight + ruleGapHeight + ruleHeight + reportTitleRow + titleGapHeight
)

// Signature block: 20mm below the table, labels, 35mm to the name lines.
const (
	signatureOffset   = 20
	signatureLabelRow = 6
	signatureLineGap  = 29
	signatureLineRow  = 6

	signatureBlockHeight = signatureOffset + signatureLabelRow + signatureLineGap + signatureLineRow
)

// TableColumns is the header row of the PDF table.
var TableColumns = []string{"No", "Nama Produk", "Berat (Kg)", "Harga/Kg", "Total", "Waktu"}

// tableGrid is the grid width of each table column; it sums to gridSize.
var tableGrid = []int{1, 5, 3, 4, 4, 7}

// Table text sizes in points, and the horizontal inset of cell text in mm.
const (
	bodyTextSize   = 8
	headerTextSize = 9
	cellTextInset  = 1
)

var (
	accent = &props.Color{Red: 0, Green: 163, Blue: 136}
	white  = &props.Color{Red: 255, Green: 255, Blue: 255}
	grid   = &props.Color{Red: 200, Green: 200, Blue: 200}
)

// PDF renders the snapshot as a paginated A4 report.
func PDF(snap types.Snapshot, opts Options) (*Document, error) {
	if len(snap.Records) == 0 {
		return nil, ErrEmptyReport
	}
	opts = opts.withDefaults()

	// ==========================================================================
	// PHASE 1: Layout
	// ==========================================================================
	spec := opts.Page
	l := NewLayout(spec)

	blocks := make([]Block, 0, len(snap.Records)+4)
	blocks = append(blocks,
		Block{Kind: BlockTitle, Height: spec.TitleHeight},
		Block{Kind: BlockTableHeader, Height: spec.HeaderHeight},
	)
	for i := range snap.Records {
		h := rowHeight(spec, rowValues(snap, i, opts), bodyTextSize)
		blocks = append(blocks, Block{Kind: BlockTableRow, Height: h, Row: i})
	}
	blocks = append(blocks,
		Block{Kind: BlockTableTotals, Height: spec.TotalsHeight},
		Block{Kind: BlockSignature, Height: spec.SignatureHeight},
	)
	for _, b := range blocks {
		if err := l.Place(b); err != nil {
			return nil, fmt.Errorf("failed to lay out report: %w", err)
		}
	}

	// ==========================================================================
	// PHASE 2: Finalize page count and footers
	// ==========================================================================
	pages, err := l.Finalize(l.PageCount(), opts.Formatter.Timestamp(snap.GeneratedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to finalize report layout: %w", err)
	}

	// ==========================================================================
	// DRAW
	// ==========================================================================
	r := &pdfRenderer{snap: snap, opts: opts}
	m := maroto.New(config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(spec.Left).
		WithRightMargin(spec.Right).
		WithTopMargin(spec.Top).
		WithBottomMargin(spec.Bottom).
		WithMaxGridSize(gridSize).
		Build())

	for _, p := range pages {
		m.AddPages(page.New().Add(r.page(p)...))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return &Document{
		Name:        opts.DocumentName,
		ContentType: ContentTypePDF,
		Bytes:       out.GetBytes(),
		Rows:        len(snap.Records),
		Pages:       len(pages),
	}, nil
}

// =============================================================================
// RENDERER
// =============================================================================

type pdfRenderer struct {
	snap types.Snapshot
	opts Options
}

// page turns one laid-out page into maroto rows. The footer is pushed to the
// bottom of the content area with a filler row.
func (r *pdfRenderer) page(p Page) []core.Row {
	var rows []core.Row
	for _, b := range p.Blocks {
		rows = append(rows, r.block(b)...)
	}

	if filler := r.opts.Page.ContentHeight() - p.Used; filler > 0 {
		rows = append(rows, row.New(filler))
	}
	return append(rows, r.footer(p.Footer))
}

func (r *pdfRenderer) block(b Block) []core.Row {
	switch b.Kind {
	case BlockTitle:
		return r.title()
	case BlockTableHeader:
		return []core.Row{r.tableHeader(b.Height)}
	case BlockTableRow:
		return []core.Row{r.tableRow(b.Row, b.Height)}
	case BlockTableTotals:
		return []core.Row{r.tableTotals(b.Height)}
	case BlockSignature:
		return r.signature()
	}
	return nil
}

func (r *pdfRenderer) title() []core.Row {
	org := r.opts.Organization

	letterhead := col.New(16).Add(text.New(org.Name, props.Text{
		Size:  13,
		Style: fontstyle.Bold,
		Align: align.Center,
		Top:   1,
	}))
	for i, addr := range org.AddressLines {
		letterhead.Add(text.New(addr, props.Text{
			Size:  9,
			Align: align.Center,
			Top:   float64(8 + 5*i),
		}))
	}

	logo := col.New(4)
	if len(org.Logo) > 0 {
		logo.Add(image.NewFromBytes(org.Logo, extension.Png, props.Rect{
			Center:  true,
			Percent: 90,
		}))
	}

	return []core.Row{
		row.New(letterheadHeight).Add(logo, letterhead, col.New(4)),
		row.New(ruleGapHeight),
		row.New(ruleHeight).Add(line.NewCol(gridSize, props.Line{Thickness: 0.3})),
		row.New(reportTitleRow).Add(text.NewCol(gridSize, org.Title, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   1,
		})),
		row.New(titleGapHeight),
	}
}

func (r *pdfRenderer) tableHeader(h float64) core.Row {
	cols := make([]core.Col, len(TableColumns))
	for i, name := range TableColumns {
		cols[i] = r.cell(tableGrid[i], name, h, true)
	}
	return row.New(h).Add(cols...)
}

func (r *pdfRenderer) tableRow(i int, h float64) core.Row {
	values := rowValues(r.snap, i, r.opts)
	cols := make([]core.Col, len(values))
	for c, v := range values {
		cols[c] = r.cell(tableGrid[c], v, h, false)
	}
	return row.New(h).Add(cols...)
}

func (r *pdfRenderer) tableTotals(h float64) core.Row {
	f := r.opts.Formatter
	totals := r.snap.Totals

	label := col.New(tableGrid[0] + tableGrid[1]).
		Add(text.New("Total Keseluruhan", props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: white,
			Top:   textTop(h, 1, headerTextSize),
			Right: 3,
		})).
		WithStyle(headerStyle())

	return row.New(h).Add(
		label,
		r.cell(tableGrid[2], f.WeightKg(totals.TotalWeight), h, true),
		r.cell(tableGrid[3], "", h, true),
		r.cell(tableGrid[4], f.Currency(totals.TotalValue), h, true),
		r.cell(tableGrid[5], "", h, true),
	)
}

func (r *pdfRenderer) signature() []core.Row {
	label := props.Text{Size: 10, Align: align.Center}
	pair := func(h float64, left, right string) core.Row {
		return row.New(h).Add(
			text.NewCol(4, left, label),
			col.New(16),
			text.NewCol(4, right, label),
		)
	}

	return []core.Row{
		row.New(signatureOffset),
		pair(signatureLabelRow, "Diperiksa,", "Mengetahui,"),
		row.New(signatureLineGap),
		pair(signatureLineRow, "(_______________)", "(_______________)"),
	}
}

func (r *pdfRenderer) footer(f Footer) core.Row {
	style := func(a align.Type) props.Text {
		return props.Text{Size: 8, Style: fontstyle.Italic, Align: a, Top: 1}
	}
	return row.New(r.opts.Page.FooterHeight).Add(
		text.NewCol(gridSize/2, f.Left, style(align.Left)),
		text.NewCol(gridSize/2, f.Right, style(align.Right)),
	)
}

// cell is one bordered table cell; header cells use the accent fill.
func (r *pdfRenderer) cell(size int, value string, h float64, header bool) core.Col {
	tp := props.Text{
		Size:  bodyTextSize,
		Align: align.Center,
		Left:  cellTextInset,
		Right: cellTextInset,
	}
	style := &props.Cell{
		BorderType:      border.Full,
		BorderColor:     grid,
		BorderThickness: 0.1,
	}
	if header {
		tp.Size = headerTextSize
		tp.Style = fontstyle.Bold
		tp.Color = white
		style = headerStyle()
	}
	lines := len(wrapLines(value, cellWidth(r.opts.Page, size), tp.Size))
	tp.Top = max(textTop(h, lines, tp.Size), 0)
	return col.New(size).Add(text.New(value, tp)).WithStyle(style)
}

func headerStyle() *props.Cell {
	return &props.Cell{
		BackgroundColor: accent,
		BorderType:      border.Full,
		BorderColor:     accent,
		BorderThickness: 0.1,
	}
}

// rowValues are the display strings of record i, in TableColumns order.
func rowValues(snap types.Snapshot, i int, opts Options) []string {
	rec := snap.Records[i]
	f := opts.Formatter
	return []string{
		fmt.Sprint(i + 1),
		rec.ProductName,
		f.Weight(rec.Weight),
		f.Currency(rec.UnitPrice),
		f.Currency(rec.TotalValue),
		f.Timestamp(rec.Timestamp),
	}
}

// cellWidth is the text width inside a table column of the given grid size.
func cellWidth(spec PageSpec, size int) float64 {
	return spec.ContentWidth()*float64(size)/gridSize - 2*cellTextInset
}

// rowHeight is the table row height that fits the most wrapped cell of
// values. It never drops below spec.RowHeight.
func rowHeight(spec PageSpec, values []string, size float64) float64 {
	h := spec.RowHeight
	for c, v := range values {
		n := len(wrapLines(v, cellWidth(spec, tableGrid[c]), size))
		h = max(h, float64(n)*lineHeight(size)+2*cellPadding)
	}
	return h
}
