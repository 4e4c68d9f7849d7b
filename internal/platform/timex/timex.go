// Package timex contains time related helpers
package timex

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Day truncates t to its calendar date in its location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WholeDays is the inclusive whole-day span between a and b
// A single-day range yields 1
func WholeDays(a, b time.Time) int {
	if b.Before(a) {
		a, b = b, a
	}
	return int(Day(b).Sub(Day(a)).Hours()/24) + 1
}
