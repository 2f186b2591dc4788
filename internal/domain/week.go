package domain

import "time"

// WeekStart truncates t to the Monday 00:00 UTC that begins its week.
// All schedule plans are keyed by this boundary.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the exclusive end of the week starting at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 7)
}

// WeekElapsed reports whether the whole week starting at weekStart lies
// in the past relative to now. Elapsed weeks are frozen history.
func WeekElapsed(weekStart, now time.Time) bool {
	return !WeekEnd(weekStart).After(now.UTC())
}
