/*
segment.go - Splitting a stay into billable month/week/day segments

PURPOSE:
  Converts a [checkIn, checkout) date span plus a rate schedule into an
  ordered sequence of LineItems. This is where the "flexible month" rule
  lives: a span within a few days of a calendar month still bills as one
  month at the monthly rate, because guests who leave on the 28th instead
  of the 31st expect a month's invoice, not 4 weeks + 0 days.

ALGORITHM:
  Walk forward from check-in. At each step compare the days available up to
  min(end-of-month+1, checkout) against a full calendar month:
    - within tolerance of a full month -> one month segment
    - remainder shorter than a month   -> whole weeks, then leftover days
    - otherwise                        -> a full calendar month, keep walking

INVARIANTS:
  - Items are contiguous, non-overlapping, and union to exactly
    [checkIn, checkout).
  - No negative-cost or zero-length items are ever produced.
  - Missing dates or checkout <= checkIn yield an empty sequence.
*/
package billing

import "github.com/shopspring/decimal"

// flexible-month tolerances: a period within monthSlackDays of a calendar
// month, and no more than monthShortfallDays short of it, bills as one month.
const (
	monthSlackDays     = 5
	monthShortfallDays = 3
)

// Segment splits a stay into consecutive billable segments. Checkout is
// exclusive: a stay never occupies its checkout date. Fails closed on
// missing or inverted dates.
func Segment(checkIn, checkout Date, rates RateSchedule) []LineItem {
	if checkIn.IsZero() || checkout.IsZero() || !checkout.After(checkIn) {
		return nil
	}

	var items []LineItem
	current := checkIn
	for current.Before(checkout) {
		eom := endOfMonth(current)
		periodEnd := MinDate(eom.AddDays(1), checkout)
		daysInPeriod := DaysBetween(current, periodEnd)
		daysInMonth := DaysBetween(current, eom.AddDays(1))

		switch {
		case absInt(daysInPeriod-daysInMonth) <= monthSlackDays &&
			daysInPeriod >= daysInMonth-monthShortfallDays:
			// Flexible month: close enough to a calendar month, billed as one.
			end := MinDate(eom, checkout.AddDays(-1))
			items = append(items, LineItem{
				StartDate: current,
				EndDate:   end,
				Cost:      rates.Monthly,
				Type:      SegmentMonth,
				Rate:      rates.Monthly,
			})
			current = end.AddDays(1)

		case eom.AfterOrEqual(checkout):
			// Remainder is shorter than a full month: whole weeks then days.
			items = append(items, segmentRemainder(current, checkout, rates)...)
			return items

		default:
			// A full calendar month with more stay beyond it.
			items = append(items, LineItem{
				StartDate: current,
				EndDate:   eom,
				Cost:      rates.Monthly,
				Type:      SegmentMonth,
				Rate:      rates.Monthly,
			})
			current = eom.AddDays(1)
		}
	}
	return items
}

// segmentRemainder exhausts a sub-month span as whole 7-day weeks followed
// by a trailing day segment. A zero-length remainder produces nothing.
func segmentRemainder(from, checkout Date, rates RateSchedule) []LineItem {
	remaining := DaysBetween(from, checkout)
	if remaining <= 0 {
		return nil
	}

	var items []LineItem
	weeks := remaining / 7
	days := remaining % 7

	cursor := from
	if weeks > 0 {
		end := cursor.AddDays(weeks*7 - 1)
		items = append(items, LineItem{
			StartDate: cursor,
			EndDate:   end,
			Cost:      rates.Weekly.Mul(decimal.NewFromInt(int64(weeks))),
			Type:      SegmentWeek,
			Rate:      rates.Weekly,
		})
		cursor = end.AddDays(1)
	}
	if days > 0 {
		items = append(items, LineItem{
			StartDate: cursor,
			EndDate:   checkout.AddDays(-1),
			Cost:      rates.Daily.Mul(decimal.NewFromInt(int64(days))),
			Type:      SegmentDay,
			Rate:      rates.Daily,
		})
	}
	return items
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
