// Package valueobject defines immutable value types for the domain layer.
package valueobject

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day or timezone component.
// Offer windows and transaction dates are compared as plain calendar dates,
// which avoids the off-by-one-day errors that local/UTC parsing causes.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate creates a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// ParseDate parses an ISO calendar-date string (YYYY-MM-DD). A trailing
// time component (e.g. "2025-09-01T13:00:00") is ignored; anything else
// malformed is rejected.
func ParseDate(s string) (Date, error) {
	datePart := s
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		datePart = s[:idx]
	}

	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}

	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// DateOf extracts the calendar date from a time.Time in its location.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Year returns the calendar year.
func (d Date) Year() int { return d.year }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Compare returns -1, 0 or +1 comparing d against other chronologically.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(int(d.month) - int(other.month))
	default:
		return sign(d.day - other.day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// MonthStart returns the first day of the month containing d.
func (d Date) MonthStart() Date {
	return Date{year: d.year, month: d.month, day: 1}
}

// MonthEnd returns the last day of the month containing d.
func (d Date) MonthEnd() Date {
	last := time.Date(d.year, d.month+1, 0, 0, 0, 0, 0, time.UTC)
	return Date{year: last.Year(), month: last.Month(), day: last.Day()}
}

// AddMonths returns the first day of the month n months after d's month.
func (d Date) AddMonths(n int) Date {
	t := time.Date(d.year, d.month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: 1}
}

// DaysUntil returns the number of whole days from d to other. The result is
// negative when other is before d.
func (d Date) DaysUntil(other Date) int {
	from := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
	to := time.Date(other.year, other.month, other.day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// MonthLabel formats the month containing d, e.g. "September 2025".
func (d Date) MonthLabel() string {
	return fmt.Sprintf("%s %d", d.month.String(), d.year)
}

// MarshalJSON encodes the date as an ISO calendar-date string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO calendar-date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MaxDate returns the later of two dates.
func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate returns the earlier of two dates.
func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start Date
	End   Date
}

// IsEmpty reports whether the range contains no dates.
func (r DateRange) IsEmpty() bool { return r.Start.After(r.End) }

// Contains reports whether d falls within the range, inclusive on both ends.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days the range spans, inclusive.
func (r DateRange) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Start.DaysUntil(r.End) + 1
}

// Intersect clips r to other; the result may be empty.
func (r DateRange) Intersect(other DateRange) DateRange {
	return DateRange{
		Start: MaxDate(r.Start, other.Start),
		End:   MinDate(r.End, other.End),
	}
}

// MonthWindows partitions an inclusive date range into calendar months, each
// window clipped to the range. A range within a single month yields one window.
func MonthWindows(start, end Date) []DateRange {
	if start.After(end) {
		return nil
	}

	var windows []DateRange
	cursor := start.MonthStart()
	for !cursor.After(end) {
		window := DateRange{
			Start: MaxDate(cursor, start),
			End:   MinDate(cursor.MonthEnd(), end),
		}
		windows = append(windows, window)
		cursor = cursor.AddMonths(1)
	}

	return windows
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
