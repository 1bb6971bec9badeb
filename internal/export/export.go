// =============================================================================
// Weighing Report - Document Export
// =============================================================================
//
// This package renders a frozen report snapshot into write-once documents:
//
//   Spreadsheet  -> one "Laporan" sheet, one row per record      (excelize)
//   PDF          -> A4 report with title, table, totals, signatures,
//                   and a "Page i of N" running footer          (maroto)
//   Table        -> the visible page window for a terminal      (lipgloss)
//
// Every renderer is a pure function of its input. An empty snapshot yields
// ErrEmptyReport and no document; callers treat that as "nothing to do".
//
// =============================================================================

package export

import (
	"errors"

	"github.com/ginjaninja78/weighing-report/internal/format"
)

// ErrEmptyReport is returned instead of a document when there is nothing to
// export. It is not a failure.
var ErrEmptyReport = errors.New("no records to export")

// Content types of the produced documents.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Default names.
const (
	DefaultSpreadsheetName = "Laporan_Penimbangan.xlsx"
	DefaultDocumentName    = "Laporan_Penimbangan.pdf"
	DefaultSheetName       = "Laporan"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is a fully materialised export.
type Document struct {
	// Name is the file name the document should be saved under.
	Name string

	// ContentType is the MIME type of Bytes.
	ContentType string

	// Bytes is the encoded file.
	Bytes []byte

	// Rows is the number of records written.
	Rows int

	// Pages is the number of physical pages (PDF only).
	Pages int
}

// =============================================================================
// OPTIONS
// =============================================================================

// Organization is printed in the PDF title block.
type Organization struct {
	Name         string
	AddressLines []string
	Title        string

	// Logo is an optional PNG drawn at the left of the title block.
	Logo []byte
}

// DefaultOrganization is the letterhead used when none is configured.
func DefaultOrganization() Organization {
	return Organization{
		Name: "PT. INTERSKALA MANDIRI INDONESIA",
		AddressLines: []string{
			"Green Sedayu Biz Park Jl. Daan Mogot KM.18, DM 12 No.62,",
			"RT.3/RW.8, Kalideres, West Jakarta City, Jakarta 11840",
			"Telp: (021) 5439-0045 | Email: sales@interskala.com",
		},
		Title: "LAPORAN PENIMBANGAN",
	}
}

// Options controls names and presentation of the documents.
type Options struct {
	Formatter       *format.Formatter
	Organization    Organization
	SpreadsheetName string
	DocumentName    string
	SheetName       string
	Page            PageSpec
}

// DefaultOptions returns the WIB formatter, the default letterhead and the
// fixed file names.
func DefaultOptions() Options {
	return Options{
		Formatter:       format.Default(),
		Organization:    DefaultOrganization(),
		SpreadsheetName: DefaultSpreadsheetName,
		DocumentName:    DefaultDocumentName,
		SheetName:       DefaultSheetName,
		Page:            A4(),
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Formatter == nil {
		o.Formatter = d.Formatter
	}
	if o.Organization.Name == "" {
		o.Organization = d.Organization
	}
	if o.Organization.Title == "" {
		o.Organization.Title = d.Organization.Title
	}
	if o.SpreadsheetName == "" {
		o.SpreadsheetName = d.SpreadsheetName
	}
	if o.DocumentName == "" {
		o.DocumentName = d.DocumentName
	}
	if o.SheetName == "" {
		o.SheetName = d.SheetName
	}
	if o.Page.Height == 0 {
		o.Page = d.Page
	}
	return o
}
