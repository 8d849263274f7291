package recurrence

import "time"

// DateLayout is the calendar-date format used at every storage and API
// boundary: zero-padded ISO date, no time component.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func daysInMonth(year int, month time.Month) int {
	// First of the next month, rolled back a day.
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// addMonthsClipped advances by the given number of months, landing on day.
// When the target month is shorter than day, the result clips to the month's
// last valid day instead of spilling over (time.AddDate would spill).
func addMonthsClipped(from time.Time, months, day int) time.Time {
	year, month, _ := from.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// addYearsClipped advances by whole years, keeping month and day. Feb 29
// clips to Feb 28 when the target year is not a leap year.
func addYearsClipped(from time.Time, years int) time.Time {
	year, month, day := from.Date()
	return addMonthsClipped(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), years*12, day)
}

// mondayWeekday maps time.Weekday to the Monday=0 convention rules use.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// weekStart returns the Monday of t's week.
func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -mondayWeekday(t))
}
