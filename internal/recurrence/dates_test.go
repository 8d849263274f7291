package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseFormatRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(parsed))

	_, err = ParseDate("29.02.2024")
	assert.Error(t, err)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, daysInMonth(2024, time.February))
	assert.Equal(t, 28, daysInMonth(2025, time.February))
	assert.Equal(t, 28, daysInMonth(1900, time.February)) // century, not leap
	assert.Equal(t, 29, daysInMonth(2000, time.February)) // 400-year rule
	assert.Equal(t, 30, daysInMonth(2024, time.April))
	assert.Equal(t, 31, daysInMonth(2024, time.December))
}

func TestAddMonthsClipped(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		months int
		day    int
		want   string
	}{
		{"plain advance", "2024-01-15", 1, 15, "2024-02-15"},
		{"clip to leap february", "2024-01-31", 1, 31, "2024-02-29"},
		{"clip to short month", "2024-03-31", 1, 31, "2024-04-30"},
		{"year rollover", "2024-11-05", 3, 5, "2025-02-05"},
		{"multi month", "2024-01-31", 2, 31, "2024-03-31"},
		{"fixed day below month length", "2024-02-10", 1, 15, "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := addMonthsClipped(date(tt.from), tt.months, tt.day)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestAddYearsClipped(t *testing.T) {
	assert.Equal(t, "2025-02-28", FormatDate(addYearsClipped(date("2024-02-29"), 1)))
	assert.Equal(t, "2028-02-29", FormatDate(addYearsClipped(date("2024-02-29"), 4)))
	assert.Equal(t, "2026-07-04", FormatDate(addYearsClipped(date("2024-07-04"), 2)))
}

func TestMondayWeekday(t *testing.T) {
	assert.Equal(t, 0, mondayWeekday(date("2024-01-01"))) // Monday
	assert.Equal(t, 6, mondayWeekday(date("2024-01-07"))) // Sunday
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, "2024-01-01", FormatDate(weekStart(date("2024-01-04"))))
	assert.Equal(t, "2024-01-01", FormatDate(weekStart(date("2024-01-01"))))
	assert.Equal(t, "2024-01-01", FormatDate(weekStart(date("2024-01-07"))))
}
