package recurrence

import (
	"sort"
	"strconv"
)

// Rule types.
const (
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
	TypeYearly  = "yearly"
)

// End conditions.
const (
	EndNever = "never"
	EndDate  = "date"
	EndCount = "count"
)

// Rule describes how a task repeats. The zero Type marks a rule that was
// cleared or could not be understood; such a rule is never scheduled.
type Rule struct {
	Type           string `json:"type"`
	Interval       int    `json:"interval"`
	Weekdays       []int  `json:"weekdays"`
	MonthDay       int    `json:"month_day,omitempty"` // 1-31, 0 = use the due date's day
	EndType        string `json:"end_type"`
	EndDate        string `json:"end_date,omitempty"`
	EndCount       int    `json:"end_count,omitempty"`
	GeneratedCount int    `json:"generated_count"`
}

// Active reports whether the rule can produce occurrences at all.
func (r Rule) Active() bool {
	switch r.Type {
	case TypeDaily, TypeWeekly, TypeMonthly, TypeYearly:
		return true
	}
	return false
}

// Normalize turns an arbitrary raw mapping (typically decoded JSON) into a
// well-formed Rule. It is total: malformed values degrade to safe defaults
// instead of failing, so partial or legacy-shaped input never breaks a
// scheduling pass. An unrecognized type yields an inert rule.
func Normalize(raw map[string]any) Rule {
	var r Rule

	switch asString(raw["type"]) {
	case TypeDaily:
		r.Type = TypeDaily
	case TypeWeekly:
		r.Type = TypeWeekly
	case TypeMonthly:
		r.Type = TypeMonthly
	case TypeYearly:
		r.Type = TypeYearly
	}

	r.Interval = asInt(raw["interval"], 0)
	if r.Interval < 1 {
		r.Interval = 1
	}

	r.Weekdays = []int{}
	if r.Type == TypeWeekly {
		r.Weekdays = normalizeWeekdays(raw["weekdays"])
	}

	if day := asInt(raw["month_day"], 0); day >= 1 && day <= 31 {
		r.MonthDay = day
	}

	switch asString(raw["end_type"]) {
	case EndDate:
		r.EndType = EndDate
	case EndCount:
		r.EndType = EndCount
	default:
		r.EndType = EndNever
	}
	r.EndDate = asString(raw["end_date"])
	if r.EndCount = asInt(raw["end_count"], 0); r.EndCount < 0 {
		r.EndCount = 0
	}

	if r.GeneratedCount = asInt(raw["generated_count"], 0); r.GeneratedCount < 0 {
		r.GeneratedCount = 0
	}

	return r
}

func normalizeWeekdays(v any) []int {
	items, ok := v.([]any)
	if !ok {
		// Already-typed input, e.g. a rule round-tripped through Go code.
		if typed, ok := v.([]int); ok {
			items = make([]any, len(typed))
			for i, d := range typed {
				items[i] = d
			}
		}
	}

	seen := make(map[int]bool)
	days := []int{}
	for _, item := range items {
		day, ok := tryInt(item)
		if !ok || day < 0 || day > 6 || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt coerces JSON-shaped numeric values; anything else yields def.
func asInt(v any, def int) int {
	if n, ok := tryInt(v); ok {
		return n
	}
	return def
}

func tryInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
