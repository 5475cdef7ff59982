package domain

import "time"

// Day normalizes t to a business day value (UTC midnight). All day columns
// are stored and compared in this form; wall-clock timestamps stay untouched.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOf builds a business day value.
func DayOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AfterEqualsDay reports a >= b on day precision.
func AfterEqualsDay(a, b time.Time) bool {
	return !Day(a).Before(Day(b))
}

// BeforeEqualsDay reports a <= b on day precision.
func BeforeEqualsDay(a, b time.Time) bool {
	return !Day(a).After(Day(b))
}

// BeforeDay reports a < b on day precision.
func BeforeDay(a, b time.Time) bool {
	return Day(a).Before(Day(b))
}

// SameDay reports a == b on day precision.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
