package recurrence

import "time"

// NextOccurrence computes the next due date strictly after from, per the
// rule's cadence. The rule must be Active; callers guard with ShouldGenerate.
func NextOccurrence(r Rule, from time.Time) time.Time {
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}

	switch r.Type {
	case TypeDaily:
		return from.AddDate(0, 0, interval)
	case TypeWeekly:
		if len(r.Weekdays) == 0 {
			return from.AddDate(0, 0, interval*7)
		}
		return nextWeekday(from, r.Weekdays, interval)
	case TypeMonthly:
		day := r.MonthDay
		if day == 0 {
			day = from.Day()
		}
		return addMonthsClipped(from, interval, day)
	case TypeYearly:
		return addYearsClipped(from, interval)
	}
	return from
}

// nextWeekday finds the first date strictly after from whose weekday is in
// the set and whose week is a whole multiple of interval weeks away from
// from's week. The set is non-empty, so a hit exists within interval+1 weeks.
func nextWeekday(from time.Time, weekdays []int, interval int) time.Time {
	allowed := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		allowed[d] = true
	}

	start := weekStart(from)
	for offset := 1; offset <= (interval+1)*7; offset++ {
		candidate := from.AddDate(0, 0, offset)
		if !allowed[mondayWeekday(candidate)] {
			continue
		}
		weeks := int(weekStart(candidate).Sub(start).Hours() / 24 / 7)
		if weeks%interval == 0 {
			return candidate
		}
	}
	return from.AddDate(0, 0, interval*7)
}

// ShouldGenerate decides whether the candidate occurrence (the due date about
// to be materialized) is still within the rule's end condition.
func ShouldGenerate(r Rule, occurrence time.Time) bool {
	if !r.Active() {
		return false
	}
	switch r.EndType {
	case EndCount:
		return r.GeneratedCount < r.EndCount
	case EndDate:
		end, err := ParseDate(r.EndDate)
		if err != nil {
			return false
		}
		return !occurrence.After(end)
	}
	return true
}
