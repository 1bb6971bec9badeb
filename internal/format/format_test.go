package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	f := Default()
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{950, "Rp 950"},
		{50000, "Rp 50.000"},
		{1234567, "Rp 1.234.567"},
		{15000.5, "Rp 15.000,5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Currency(tt.in))
	}
}

func TestWeight(t *testing.T) {
	f := Default()
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "2.50"},
		{0, "0.00"},
		{1.333, "1.33"},
		// rounding follows the stored binary value
		{2.675, "2.67"},
		{1.005, "1.00"},
		{10.005, "10.01"},
		// exact ties round up
		{0.125, "0.13"},
		{1.125, "1.13"},
		{1234.5678, "1234.57"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Weight(tt.in), "Weight(%v)", tt.in)
	}
	assert.Equal(t, "12.35 Kg", f.WeightKg(12.345))
}

func TestTimestamp(t *testing.T) {
	f := Default()

	ts, err := f.ParseTimestamp("2024-01-02T09:05")
	require.NoError(t, err)
	assert.Equal(t, "02 Januari 2024 pukul 09.05 WIB", f.Timestamp(ts))
	assert.Equal(t, "02 Januari 2024", f.Date(ts))

	// the display zone is fixed, not the caller's
	assert.Equal(t, "02 Januari 2024 pukul 09.05 WIB", f.Timestamp(ts.UTC()))
}

func TestParseTimestamp(t *testing.T) {
	f := Default()
	want := time.Date(2024, 8, 17, 10, 30, 0, 0, f.Location())

	for _, in := range []string{
		"2024-08-17T10:30",
		"2024-08-17T10:30:00",
		"2024-08-17T10:30:00.000",
		"2024-08-17 10:30:00",
		"2024-08-17T03:30:00Z",
		"Sat, 17 Aug 2024 03:30:00 GMT",
	} {
		got, err := f.ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}

	_, err := f.ParseTimestamp("kemarin")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	f := Default()
	d, err := f.ParseDate("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, f.Location(), d.Location())

	_, err = f.ParseDate("02/01/2024")
	assert.Error(t, err)
}

func TestNewRejectsUnknownZone(t *testing.T) {
	_, err := New("Mars/Olympus", "")
	assert.Error(t, err)
}
