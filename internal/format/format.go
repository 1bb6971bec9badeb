// =============================================================================
// Weighing Report - Display Formatting
// =============================================================================
//
// Formatter turns record values into the strings shown on screen and in the
// exported documents:
//
//   Currency(50000)      -> "Rp 50.000"
//   Weight(2.5)          -> "2.50"
//   Timestamp(t)         -> "01 Januari 2024 pukul 10.00 WIB"
//
// Upstream timestamps carry no zone. They are read in the configured display
// location (Asia/Jakarta by default) and always printed with its fixed label,
// whatever the host's local zone is.
//
// =============================================================================

package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults for the display zone.
const (
	DefaultLocation = "Asia/Jakarta"
	DefaultLabel    = "WIB"
)

// CurrencyPrefix precedes every currency figure.
const CurrencyPrefix = "Rp "

// numberTag selects id-ID grouping ("." for thousands, "," for decimals).
var numberTag = language.Indonesian

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// =============================================================================
// FORMATTER
// =============================================================================

// Formatter renders values for the display location.
type Formatter struct {
	loc   *time.Location
	label string
}

// New loads the named IANA location. An empty name means DefaultLocation and
// an empty label means DefaultLabel.
func New(location, label string) (*Formatter, error) {
	if location == "" {
		location = DefaultLocation
	}
	if label == "" {
		label = DefaultLabel
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", location, err)
	}
	return &Formatter{loc: loc, label: label}, nil
}

// Default returns the Asia/Jakarta / WIB formatter.
func Default() *Formatter {
	f, err := New(DefaultLocation, DefaultLabel)
	if err != nil {
		// tzdata is embedded, so this only happens with a broken build.
		return &Formatter{loc: time.FixedZone(DefaultLabel, 7*60*60), label: DefaultLabel}
	}
	return f
}

// Location is the display location.
func (f *Formatter) Location() *time.Location { return f.loc }

// Label is the zone label appended to timestamps.
func (f *Formatter) Label() string { return f.label }

// =============================================================================
// NUMBERS
// =============================================================================

// Currency renders "Rp " followed by the id-ID grouped amount with up to
// three fraction digits.
func (f *Formatter) Currency(v float64) string {
	return CurrencyPrefix + Grouped(v)
}

// Grouped renders v with id-ID separators and up to three fraction digits.
func Grouped(v float64) string {
	rounded, _ := decimal.NewFromFloat(v).Round(3).Float64()
	p := message.NewPrinter(numberTag)
	return p.Sprint(number.Decimal(rounded, number.MaxFractionDigits(3)))
}

// exactDigits is enough fraction digits to print any float64 exactly.
const exactDigits = 1074

// Weight renders v with exactly two decimals. Rounding works on the exact
// binary value of v with ties away from zero, so 2.675 (stored as
// 2.67499...) gives "2.67" while 0.125 gives "0.13".
func (f *Formatter) Weight(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	exact, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return exact.StringFixed(2)
}

// WeightKg renders the weight with its unit, as used in totals rows.
func (f *Formatter) WeightKg(v float64) string {
	return f.Weight(v) + " Kg"
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// Timestamp renders t in the display location, e.g.
// "02 Januari 2024 pukul 09.05 WIB".
func (f *Formatter) Timestamp(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%02d %s %d pukul %02d.%02d %s",
		t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute(), f.label)
}

// Date renders the calendar day only, e.g. "02 Januari 2024".
func (f *Formatter) Date(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%02d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// naiveLayouts are read in the display location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// zonedLayouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
}

// ParseTimestamp reads an upstream "waktu" value and returns it in the
// display location.
func (f *Formatter) ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(f.loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ParseDate reads a "2006-01-02" calendar day as midnight in the display
// location.
func (f *Formatter) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), f.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
