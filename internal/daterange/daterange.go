// Package daterange computes the calendar boundaries the view layer works
// with. Weeks start on Monday; all ranges are closed intervals at civil-date
// granularity. Day arithmetic goes through time.AddDate so month and year
// rollovers and leap days are handled by the time package.
package daterange

import "time"

// Range is a closed interval of civil dates. Start and End are midnight in
// the dates' location.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the civil date of t falls within the range,
// inclusive on both ends.
func (r Range) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(r.Start)) && !d.After(DateOf(r.End))
}

// Days enumerates every date in the range in order.
func (r Range) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for d := DateOf(r.Start); !d.After(DateOf(r.End)); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// DateOf truncates t to midnight, keeping its location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same civil date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	switch wd := d.Weekday(); wd {
	case time.Sunday:
		return AddDays(d, -6)
	default:
		return AddDays(d, -(int(wd) - 1))
	}
}

// WeekEnd returns the Sunday ending the week containing t.
func WeekEnd(t time.Time) time.Time {
	return AddDays(WeekStart(t), 6)
}

// Week returns the closed Monday..Sunday range containing t.
func Week(t time.Time) Range {
	start := WeekStart(t)
	return Range{Start: start, End: AddDays(start, 6)}
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return AddDays(MonthStart(t).AddDate(0, 1, 0), -1)
}

// Month returns the closed first..last day range of t's month.
func Month(t time.Time) Range {
	return Range{Start: MonthStart(t), End: MonthEnd(t)}
}

// WeekDays returns the seven dates starting at the week start of t.
func WeekDays(t time.Time) []time.Time {
	return Week(t).Days()
}

// Grid returns the month-view grid span for t: full weeks covering the
// month, from the Monday on or before the 1st through the Sunday on or
// after the last day.
func Grid(t time.Time) []time.Time {
	m := Month(t)
	return Range{Start: WeekStart(m.Start), End: WeekEnd(m.End)}.Days()
}
