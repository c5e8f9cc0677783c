package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

// DateOnly strips the time of day, keeping the calendar date of t as a UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" string into a date-only value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return DateOnly(t).Format(DateLayout)
}

// DaysInclusive counts the calendar days in [start, end]. Returns 0 when end is before start.
func DaysInclusive(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// OverlapDays returns the number of whole days common to the inclusive ranges
// [startA, endA] and [startB, endB], comparing dates only.
func OverlapDays(startA, endA, startB, endB time.Time) int {
	s := maxTime(DateOnly(startA), DateOnly(startB))
	e := minTime(DateOnly(endA), DateOnly(endB))
	return DaysInclusive(s, e)
}

// MonthBounds returns the first and last calendar day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	_, end := MonthBounds(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	return end.Day()
}

// EachDay calls fn for every day in [start, end] in ascending order.
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for d := DateOnly(start); !d.After(DateOnly(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Key renders the month as "YYYY-M".
func (m Month) Key() string {
	return fmt.Sprintf("%d-%d", m.Year, int(m.Month))
}

// Bounds returns the first and last day of the month.
func (m Month) Bounds() (time.Time, time.Time) {
	return MonthBounds(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC))
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC))
}

// MonthsTouched lists the distinct months covered by [start, end] in ascending order.
func MonthsTouched(start, end time.Time) []Month {
	first, last := MonthOf(DateOnly(start)), MonthOf(DateOnly(end))
	if DateOnly(end).Before(DateOnly(start)) {
		return nil
	}

	var months []Month
	for m := first; ; m = m.Next() {
		months = append(months, m)
		if m == last {
			break
		}
	}
	return months
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
