package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAPIDate(t *testing.T) {
	tests := []struct {
		in    string
		ok    bool
		year  int
		month time.Month
		day   int
	}{
		{"2025-03-01", true, 2025, time.March, 1},
		{"2025-03-01T10:15:00.000Z", true, 2025, time.March, 1},
		{"2025-03-31T20:00:00Z", true, 2025, time.April, 1}, // 01:30 IST next day
		{"2025-03-01T10:15:00+05:30", true, 2025, time.March, 1},
		{"", false, 0, 0, 0},
		{"yesterday", false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAPIDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, tt.month, got.Month())
			assert.Equal(t, tt.day, got.Day())
		})
	}
}

func TestStartOfMonthAndYear(t *testing.T) {
	ts := time.Date(2025, time.July, 19, 13, 0, 0, 0, IST)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, IST), StartOfMonth(ts))
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, IST), StartOfYear(ts))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "05 Feb 2025", FormatDate(time.Date(2025, 2, 5, 9, 0, 0, 0, IST)))
}
