/*
Package billing is the rental billing computation core.

PURPOSE:
  Pure functions that turn a stay's date range and rate schedule into
  billable line items, aggregate those into total/owed/due-now figures,
  detect scheduling conflicts, and generate date-driven reminders.

DESIGN PRINCIPLES:
  1. Purity: no I/O, no clock access. "Today" is always a parameter.
  2. Fail closed: malformed input yields zero values or empty sequences,
     never a panic or an error. One bad booking must not sink a report.
  3. Precision: money is decimal.Decimal end to end. Rounding happens at
     presentation boundaries only.
  4. Line items are derived, never authoritative: regenerate them from
     check-in/checkout/rates on every read. A stored copy silently
     desynchronizes when dates or rates change.

SEE ALSO:
  - segment.go:    date span -> line items
  - cost.go:       line items + payments + readings -> stay cost
  - duenow.go:     what is owed as of a given day
  - overlap.go:    stay conflict detection
  - reminder.go:   rolling-window reminder generation
  - sortfilter.go: derived-field filtering and ordering
*/
package billing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// SegmentType classifies a billable segment of a stay.
type SegmentType string

const (
	SegmentMonth SegmentType = "month"
	SegmentWeek  SegmentType = "week"
	SegmentDay   SegmentType = "day"
)

// LineItem is one billable segment of a stay. EndDate is INCLUSIVE;
// consecutive items are contiguous and together cover exactly
// [checkIn, checkout).
type LineItem struct {
	StartDate Date
	EndDate   Date
	Cost      decimal.Decimal
	Type      SegmentType
	Rate      decimal.Decimal
}

// Days returns the number of days the item covers (end inclusive).
func (li LineItem) Days() int {
	return DaysBetween(li.StartDate, li.EndDate) + 1
}

// RateSchedule carries the three base rates a stay is billed against.
// Per-stay overrides replace the unit defaults wholesale, so callers pass
// whichever schedule applies.
type RateSchedule struct {
	Daily   decimal.Decimal
	Weekly  decimal.Decimal
	Monthly decimal.Decimal
}

// =============================================================================
// PAYMENTS
// =============================================================================

// PaymentCategory classifies a payment for aggregation. Deposit is the odd
// one out: it never reduces rent owed and is excluded from income figures.
type PaymentCategory string

const (
	PaymentRent    PaymentCategory = "Rent"
	PaymentUtility PaymentCategory = "Utility"
	PaymentDeposit PaymentCategory = "Deposit"
	PaymentOther   PaymentCategory = "Other"
)

// Payment is an immutable financial record once saved.
type Payment struct {
	Date     Date
	Amount   decimal.Decimal
	Category PaymentCategory
}

// =============================================================================
// METER READINGS
// =============================================================================

// MeterReading is a utility meter sample. Readings are intended to be
// monotonically increasing but that is not enforced; cost computation
// clamps a negative delta to zero instead.
type MeterReading struct {
	Date    Date
	Reading decimal.Decimal
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

// OwedTolerance is the slack under which a balance counts as settled.
// Absorbs rounding drift from rate arithmetic; not an exact-zero check.
var OwedTolerance = decimal.NewFromInt(2)

// IsOwed reports whether an outstanding amount exceeds the settlement
// tolerance.
func IsOwed(balance decimal.Decimal) bool {
	return balance.GreaterThan(OwedTolerance)
}
