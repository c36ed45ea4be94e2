package billing

import (
	"time"
)

// =============================================================================
// DATE - Calendar date without time-of-day
// =============================================================================

// Date is a calendar date. Time-of-day is deliberately absent: every figure
// in this package is computed on day boundaries, and mixing instants with
// dates is how stays end up billed for phantom days.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. The zero Date and an error are
// returned for anything unparsable; callers in this package treat zero
// dates as "no data" rather than failing.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// DateOf truncates an instant to its calendar date (UTC).
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today samples the system clock. Sample it ONCE per computation pass and
// thread the value through; two samples straddling midnight desynchronize
// due-now figures from reminders.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }
func (d Date) IsZero() bool                  { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MinDate returns the earlier of two dates.
func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// DaysBetween returns the number of days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// endOfMonth returns the last day of the month-long span starting at d:
// (d + 1 month) - 1 day. For d on the 1st this is the last calendar day of
// d's month; mid-month anchors roll the same way time.AddDate does.
func endOfMonth(d Date) Date {
	return d.AddMonths(1).AddDays(-1)
}

// WholeMonths counts complete months from 'from' to 'to' by walking monthly
// anniversaries, and returns the leftover days after the last complete month.
// Each anniversary is anchored to 'from' (from + n months), never compounded
// step by step, so an end-of-month anchor does not drift through short
// months (Jan 31 + 2 anchored months is Mar 31, not Apr 3).
// Returns (0, 0) when 'to' is not after 'from'.
func WholeMonths(from, to Date) (months int, remainderDays int) {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return 0, 0
	}
	for from.AddMonths(months + 1).BeforeOrEqual(to) {
		months++
	}
	return months, DaysBetween(from.AddMonths(months), to)
}
