// =============================================================================
// Weighing Report - Record Ingestion
// =============================================================================
//
// This package is the boundary between upstream data and the report
// pipeline. Everything that enters the pipeline passes through here and is
// validated once, so that the pipeline itself can stay total:
//
//   JSON  : [{id, nama_produk, berat, harga_per_kg, total_harga, waktu}, ...]
//   CSV   : same columns, header row first
//   HTTP  : GET /api/riwayat with a bearer token (client.go)
//
// VALIDATION:
//   - every field present
//   - numbers finite and non-negative
//   - product name not blank
//   - waktu parseable (see format.ParseTimestamp)
//   - id unique within the batch
//
// All violations are collected and returned together.
//
// =============================================================================

package source

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

// =============================================================================
// WIRE FORMAT
// =============================================================================

// WireRecord is the upstream JSON shape of one record. Pointer fields tell a
// missing value apart from a zero.
type WireRecord struct {
	ID          *int64   `json:"id"`
	ProductName *string  `json:"nama_produk"`
	Weight      *float64 `json:"berat"`
	UnitPrice   *float64 `json:"harga_per_kg"`
	TotalValue  *float64 `json:"total_harga"`
	Timestamp   *string  `json:"waktu"`
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// ValidationError describes one contract violation.
type ValidationError struct {
	// Row is the 1-based position of the record in its batch.
	Row int

	// Field is the wire field name.
	Field string

	// Value is the offending value, if any.
	Value string

	// Message says what is wrong.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("record %d, field '%s': %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("record %d, field '%s': %s (value: '%s')", e.Row, e.Field, e.Message, e.Value)
}

// Violations lists the ValidationErrors inside err, looking through wrapped
// and combined errors.
func Violations(err error) []*ValidationError {
	var out []*ValidationError
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
		case *ValidationError:
			out = append(out, x)
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return out
}

// =============================================================================
// DECODING
// =============================================================================

// Decode reads a JSON array of records and validates it.
func Decode(r io.Reader, f *format.Formatter) ([]types.Record, error) {
	var wire []WireRecord
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return FromWire(wire, f)
}

// FromWire converts and validates decoded records. On any violation it
// returns no records and every violation combined into one error.
func FromWire(wire []WireRecord, f *format.Formatter) ([]types.Record, error) {
	if f == nil {
		f = format.Default()
	}

	var errs error
	seen := make(map[int64]int, len(wire))
	out := make([]types.Record, 0, len(wire))

	for i, w := range wire {
		row := i + 1
		fail := func(field, value, msg string) {
			errs = multierr.Append(errs, &ValidationError{Row: row, Field: field, Value: value, Message: msg})
		}

		var rec types.Record
		ok := true

		switch {
		case w.ID == nil:
			fail("id", "", "missing")
			ok = false
		default:
			rec.ID = *w.ID
			if first, dup := seen[rec.ID]; dup {
				fail("id", strconv.FormatInt(rec.ID, 10), fmt.Sprintf("duplicate of record %d", first))
				ok = false
			} else {
				seen[rec.ID] = row
			}
		}

		if w.ProductName == nil || strings.TrimSpace(*w.ProductName) == "" {
			fail("nama_produk", "", "missing or blank")
			ok = false
		} else {
			rec.ProductName = *w.ProductName
		}

		for _, n := range []struct {
			field string
			in    *float64
			out   *float64
		}{
			{"berat", w.Weight, &rec.Weight},
			{"harga_per_kg", w.UnitPrice, &rec.UnitPrice},
			{"total_harga", w.TotalValue, &rec.TotalValue},
		} {
			if msg := checkAmount(n.in); msg != "" {
				value := ""
				if n.in != nil {
					value = strconv.FormatFloat(*n.in, 'f', -1, 64)
				}
				fail(n.field, value, msg)
				ok = false
				continue
			}
			*n.out = *n.in
		}

		if w.Timestamp == nil {
			fail("waktu", "", "missing")
			ok = false
		} else if ts, err := f.ParseTimestamp(*w.Timestamp); err != nil {
			fail("waktu", *w.Timestamp, "unparseable timestamp")
			ok = false
		} else {
			rec.Timestamp = ts
		}

		if ok {
			out = append(out, rec)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func checkAmount(v *float64) string {
	switch {
	case v == nil:
		return "missing"
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return "not a finite number"
	case *v < 0:
		return "negative"
	}
	return ""
}
