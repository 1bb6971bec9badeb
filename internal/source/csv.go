package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

// CSVColumns are the required header names, in any order.
var CSVColumns = []string{"id", "nama_produk", "berat", "harga_per_kg", "total_harga", "waktu"}

// CSVOptions configures ReadCSV.
type CSVOptions struct {
	// Delimiter defaults to ','.
	Delimiter rune

	// Encoding is "utf-8" (default) or "windows-1252" for spreadsheet
	// exports saved on older desktops.
	Encoding string
}

// ReadCSV reads records from a CSV stream whose first row names the columns.
// Numbers are accepted with either '.' or ',' as the decimal separator.
func ReadCSV(r io.Reader, opts CSVOptions, f *format.Formatter) ([]types.Record, error) {
	reader, err := decodeStream(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(reader)
	cr.Comma = ','
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	allRows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV input is empty")
	}

	// ==========================================================================
	// Header mapping
	// ==========================================================================
	index := make(map[string]int, len(allRows[0]))
	for i, h := range allRows[0] {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	var missing []string
	for _, c := range CSVColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV header is missing columns: %s", strings.Join(missing, ", "))
	}

	// ==========================================================================
	// Rows -> wire records
	// ==========================================================================
	wire := make([]WireRecord, 0, len(allRows)-1)
	for _, raw := range allRows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		get := func(col string) (string, bool) {
			i := index[col]
			if i >= len(raw) {
				return "", false
			}
			v := strings.TrimSpace(raw[i])
			return v, v != ""
		}

		var w WireRecord
		if v, ok := get("id"); ok {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				w.ID = &id
			}
		}
		if v, ok := get("nama_produk"); ok {
			w.ProductName = &v
		}
		w.Weight = parseAmount(get("berat"))
		w.UnitPrice = parseAmount(get("harga_per_kg"))
		w.TotalValue = parseAmount(get("total_harga"))
		if v, ok := get("waktu"); ok {
			w.Timestamp = &v
		}
		wire = append(wire, w)
	}

	return FromWire(wire, f)
}

func decodeStream(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return bufio.NewReader(r), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported CSV encoding %q", encoding)
}

// parseAmount returns nil for a missing or non-numeric value so that
// validation reports it.
func parseAmount(v string, ok bool) *float64 {
	if !ok {
		return nil
	}
	if strings.Count(v, ",") == 1 && !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &n
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
