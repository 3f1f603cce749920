// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// CombineDateTime merges a calendar date with a "15:04" clock string
// into a single instant in the date's location. A malformed clock
// string falls back to midnight.
func CombineDateTime(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return BeginningOfDay(date)
	}
	year, month, day := date.Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, date.Location())
}
