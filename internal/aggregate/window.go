package aggregate

import (
	"time"

	"agency-console/internal/timeutil"
)

// Window is a half-open calendar range [From, To) in IST. The zero Window
// means all time.
type Window struct {
	From time.Time
	To   time.Time
}

func AllTime() Window {
	return Window{}
}

func Month(year int, month time.Month) Window {
	from := time.Date(year, month, 1, 0, 0, 0, 0, timeutil.IST)
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

func Year(year int) Window {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, timeutil.IST)
	return Window{From: from, To: from.AddDate(1, 0, 0)}
}

func (w Window) IsAllTime() bool {
	return w.From.IsZero() && w.To.IsZero()
}

// Contains reports whether t falls inside w. Undated values belong only to
// the all-time window.
func (w Window) Contains(t time.Time) bool {
	if w.IsAllTime() {
		return true
	}
	if t.IsZero() {
		return false
	}
	return !t.Before(w.From) && t.Before(w.To)
}
