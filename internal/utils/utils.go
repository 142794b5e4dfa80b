package utils

import "time"

// MonthWindow returns the inclusive bounds of the calendar month containing t:
// first day at 00:00:00 through last day at 23:59:59, in t's location. This is
// the window used for monthly movement counting and period queries.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// YearMonth builds the first day of the given year and month, the canonical
// period value for movement-history queries.
func YearMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
}
