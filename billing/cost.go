/*
cost.go - Aggregating a stay into money figures

PURPOSE:
  Sums rent (computed line items OR an all-in override price), utility cost
  (meter deltas x rate), and the prorated water charge into the total stay
  cost, and nets payments against it.

RENT BASIS:
  Rent has two mutually exclusive sources, resolved once up front rather
  than scattered through conditionals:
    - Override: an all-in totalPrice (minus commission) set on the stay.
      Line items are still produced for display but carry no authority.
    - Computed: the sum of segmented line-item costs.

DEPOSIT:
  Deposits never count toward rent paid or total cost. They are tracked
  separately against the stay's deposit field.
*/
package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RENT BASIS - Override vs Computed, decided once
// =============================================================================

// RentBasis is the resolved source of a stay's rent figure.
type RentBasis struct {
	overridden bool
	override   decimal.Decimal
	items      []LineItem
}

// ResolveRentBasis picks the rent source: a positive totalPrice wins and the
// commission comes off it; otherwise the line items are authoritative.
func ResolveRentBasis(totalPrice, commission decimal.Decimal, items []LineItem) RentBasis {
	if totalPrice.IsPositive() {
		return RentBasis{overridden: true, override: totalPrice.Sub(commission)}
	}
	return RentBasis{items: items}
}

// Overridden reports whether an all-in price replaces the computed items.
func (rb RentBasis) Overridden() bool { return rb.overridden }

// Rent returns the authoritative rent figure for the basis.
func (rb RentBasis) Rent() decimal.Decimal {
	if rb.overridden {
		return rb.override
	}
	total := decimal.Zero
	for _, item := range rb.items {
		total = total.Add(item.Cost)
	}
	return total
}

// =============================================================================
// COST COMPONENTS
// =============================================================================

// RentCost computes the rent portion of a stay's cost.
func RentCost(totalPrice, commission decimal.Decimal, items []LineItem) decimal.Decimal {
	return ResolveRentBasis(totalPrice, commission, items).Rent()
}

// MeterCost derives the utility cost from the first and last reading by
// date order. Fewer than two readings cost nothing, and a reversed meter
// (last < first) clamps to zero rather than crediting the guest.
// The input slice is never mutated; ordering is established on a copy.
func MeterCost(readings []MeterReading, rate decimal.Decimal) decimal.Decimal {
	if len(readings) < 2 {
		return decimal.Zero
	}
	ordered := make([]MeterReading, len(readings))
	copy(ordered, readings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	delta := ordered[len(ordered)-1].Reading.Sub(ordered[0].Reading)
	if delta.IsNegative() {
		return decimal.Zero
	}
	return delta.Mul(rate)
}

// waterRemainderThresholdDays: a trailing partial month of at least this many
// days bills a full month of water. Independent of the flexible-month rule
// in segment.go; the two tolerances are intentionally separate computations.
const waterRemainderThresholdDays = 28

// WaterCost charges the monthly water rate per whole month of the stay,
// rounding a near-month remainder (>= 28 days) up to a full month.
func WaterCost(checkIn, checkout Date, monthlyWaterCharge decimal.Decimal) decimal.Decimal {
	months, remainder := WholeMonths(checkIn, checkout)
	if remainder >= waterRemainderThresholdDays {
		months++
	}
	return monthlyWaterCharge.Mul(decimal.NewFromInt(int64(months)))
}

// TotalCost is rent + utilities + water. Deposit is always excluded; it is
// reported separately.
func TotalCost(rent, meter, water decimal.Decimal) decimal.Decimal {
	return rent.Add(meter).Add(water)
}

// =============================================================================
// PAYMENT AGGREGATION
// =============================================================================

// AmountPaid sums every payment, deposits included.
func AmountPaid(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// RentPaid sums payments that count against the stay cost: everything
// except deposits.
func RentPaid(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Category == PaymentDeposit {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

// AmountDue is the total stay cost less non-deposit payments.
func AmountDue(totalCost decimal.Decimal, payments []Payment) decimal.Decimal {
	return totalCost.Sub(RentPaid(payments))
}
