package timeutil

import (
	"strings"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). All calendar bucketing
// (months, years, "today") happens in IST.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// FormatIST formats a time in IST using the given layout
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// StartOfDay returns 00:00:00 IST of the given time's day
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// StartOfMonth returns the first instant of the IST calendar month containing t.
func StartOfMonth(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), 1, 0, 0, 0, 0, IST)
}

// StartOfYear returns the first instant of the IST calendar year containing t.
func StartOfYear(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), time.January, 1, 0, 0, 0, 0, IST)
}

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
	MonthLayout    = "Jan 2006"
)

// apiLayouts are the date shapes the REST API is known to emit.
var apiLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	DateTimeLayout,
	DateLayout,
}

// ParseAPIDate parses a date string from the API. Date-only values are read as
// IST midnight. The boolean is false for empty or unparseable input.
func ParseAPIDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range apiLayouts {
		t, err := time.ParseInLocation(layout, value, IST)
		if err == nil {
			return t.In(IST), true
		}
	}
	return time.Time{}, false
}

// SameDay reports whether a and b fall on the same IST calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// FormatDate renders a possibly-zero time for display.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return FormatIST(t, DisplayLayout)
}
