package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartsOnMonday(t *testing.T) {
	// Wednesday 2024-01-10 sits in the week of Monday the 8th.
	r := Week(date(2024, time.January, 10))
	assert.Equal(t, date(2024, time.January, 8), r.Start)
	assert.Equal(t, date(2024, time.January, 14), r.End)
}

func TestWeekSundayBelongsToPrecedingMonday(t *testing.T) {
	r := Week(date(2024, time.January, 14))
	assert.Equal(t, date(2024, time.January, 8), r.Start)
	assert.Equal(t, date(2024, time.January, 14), r.End)
}

func TestWeekMidweekAnchor(t *testing.T) {
	// Wednesday 2024-03-06 displays Monday the 4th through Sunday the 10th.
	r := Week(date(2024, time.March, 6))
	assert.Equal(t, date(2024, time.March, 4), r.Start)
	assert.Equal(t, date(2024, time.March, 10), r.End)
}

func TestWeekMondayIsItsOwnStart(t *testing.T) {
	r := Week(date(2024, time.January, 8))
	assert.Equal(t, date(2024, time.January, 8), r.Start)
}

func TestWeekSpansMonthBoundary(t *testing.T) {
	// Wednesday 2024-01-31: the week runs Jan 29 through Feb 4.
	r := Week(date(2024, time.January, 31))
	assert.Equal(t, date(2024, time.January, 29), r.Start)
	assert.Equal(t, date(2024, time.February, 4), r.End)
}

func TestWeekSpansYearBoundary(t *testing.T) {
	// Tuesday 2024-12-31: the week runs Dec 30 through Jan 5.
	r := Week(date(2024, time.December, 31))
	assert.Equal(t, date(2024, time.December, 30), r.Start)
	assert.Equal(t, date(2025, time.January, 5), r.End)
}

func TestMonthLeapFebruary(t *testing.T) {
	r := Month(date(2024, time.February, 15))
	assert.Equal(t, date(2024, time.February, 1), r.Start)
	assert.Equal(t, date(2024, time.February, 29), r.End)
}

func TestMonthNonLeapFebruary(t *testing.T) {
	r := Month(date(2023, time.February, 15))
	assert.Equal(t, date(2023, time.February, 28), r.End)
}

func TestMonthDecember(t *testing.T) {
	r := Month(date(2024, time.December, 5))
	assert.Equal(t, date(2024, time.December, 1), r.Start)
	assert.Equal(t, date(2024, time.December, 31), r.End)
}

func TestRangeContainsIgnoresTimeOfDay(t *testing.T) {
	r := Week(date(2024, time.January, 10))
	assert.True(t, r.Contains(time.Date(2024, time.January, 14, 23, 59, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, time.January, 8, 0, 0, 1, 0, time.UTC)))
	assert.False(t, r.Contains(date(2024, time.January, 15)))
	assert.False(t, r.Contains(date(2024, time.January, 7)))
}

func TestRangeDays(t *testing.T) {
	days := Week(date(2024, time.January, 10)).Days()
	assert.Len(t, days, 7)
	assert.Equal(t, date(2024, time.January, 8), days[0])
	assert.Equal(t, date(2024, time.January, 14), days[6])
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(date(2024, time.March, 3)) // a Sunday
	assert.Len(t, days, 7)
	assert.Equal(t, date(2024, time.February, 26), days[0])
	assert.Equal(t, date(2024, time.March, 3), days[6])
}

func TestGridCoversFullWeeks(t *testing.T) {
	// March 2024: the 1st is a Friday, the 31st a Sunday. The grid starts
	// Monday Feb 26 and ends Sunday Mar 31, five full weeks.
	days := Grid(date(2024, time.March, 15))
	assert.Len(t, days, 35)
	assert.Equal(t, date(2024, time.February, 26), days[0])
	assert.Equal(t, date(2024, time.March, 31), days[34])
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[len(days)-1].Weekday())
}

func TestGridLengthIsAlwaysWeekMultiple(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		days := Grid(date(2024, month, 10))
		assert.Zero(t, len(days)%7, "month %s", month)
	}
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(
		time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 1, 22, 0, 0, 0, time.UTC),
	))
	assert.False(t, SameDay(date(2024, time.May, 1), date(2024, time.May, 2)))
}

func TestAddDaysRollsOverYear(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 2), AddDays(date(2024, time.December, 31), 2))
}
