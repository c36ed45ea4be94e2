/*
duenow.go - What is owed as of a given day

PURPOSE:
  Computes obligations as of "today", which is distinct from total cost:
  total cost includes future, not-yet-elapsed charges; due-now only counts
  what the calendar has already delivered.

CUTOFF RULES (each component prorates differently, on purpose):
  - Rent: an override price is fully due once check-in has occurred.
    Computed rent counts only line items whose start date has arrived.
  - Water: strict elapsed whole months. This is NOT WaterCost's 28-day
    rounding rule; the two must stay separate or reported totals shift.
  - Electric: fully due whenever readings exist. Meter charges follow the
    meter, not the calendar.

Nothing is owed before arrival: a future check-in zeroes every figure.
*/
package billing

import "github.com/shopspring/decimal"

// RentCadence is the recurring payment cadence of a stay.
type RentCadence string

const (
	CadenceDay   RentCadence = "day"
	CadenceWeek  RentCadence = "week"
	CadenceMonth RentCadence = "month"
)

// DueNowRent computes the rent portion owed as of today. An override price
// is due in full once the stay has started; computed rent accrues item by
// item as each segment's start date arrives.
func DueNowRent(checkIn Date, totalPrice, commission decimal.Decimal, items []LineItem, today Date) decimal.Decimal {
	if checkIn.IsZero() || checkIn.After(today) {
		return decimal.Zero
	}
	basis := ResolveRentBasis(totalPrice, commission, items)
	if basis.Overridden() {
		return basis.Rent()
	}
	due := decimal.Zero
	for _, item := range items {
		if item.StartDate.BeforeOrEqual(today) {
			due = due.Add(item.Cost)
		}
	}
	return due
}

// DueNowWater charges strictly elapsed whole months of water, no rounding.
func DueNowWater(checkIn Date, monthlyWaterCharge decimal.Decimal, today Date) decimal.Decimal {
	if checkIn.IsZero() || checkIn.After(today) {
		return decimal.Zero
	}
	months, _ := WholeMonths(checkIn, today)
	return monthlyWaterCharge.Mul(decimal.NewFromInt(int64(months)))
}

// DueNowElectric is the meter cost: fully due once readings exist, never
// prorated by date.
func DueNowElectric(checkIn Date, readings []MeterReading, rate decimal.Decimal, today Date) decimal.Decimal {
	if checkIn.IsZero() || checkIn.After(today) {
		return decimal.Zero
	}
	return MeterCost(readings, rate)
}

// DueNow is the sum of all due-now components. Deposit excluded as always.
func DueNow(rent, electric, water decimal.Decimal) decimal.Decimal {
	return rent.Add(electric).Add(water)
}

// BalanceNow nets non-deposit payments against the due-now figure. Use
// IsOwed on the result; the tolerance absorbs rounding drift.
func BalanceNow(dueNow decimal.Decimal, payments []Payment) decimal.Decimal {
	return dueNow.Sub(RentPaid(payments))
}

// NextPaymentDueDate walks forward from check-in by one cadence unit at a
// time and returns the first date strictly after today. A zero check-in
// returns the zero Date; an unrecognized cadence returns check-in
// unchanged instead of walking forever.
func NextPaymentDueDate(checkIn Date, cadence RentCadence, today Date) Date {
	if checkIn.IsZero() {
		return Date{}
	}

	var step func(Date) Date
	switch cadence {
	case CadenceDay:
		step = func(d Date) Date { return d.AddDays(1) }
	case CadenceWeek:
		step = func(d Date) Date { return d.AddDays(7) }
	case CadenceMonth:
		step = func(d Date) Date { return d.AddMonths(1) }
	default:
		return checkIn
	}

	due := checkIn
	for due.BeforeOrEqual(today) {
		due = step(due)
	}
	return due
}
