/*
financials.go - One-pass financial snapshot of a stay

Every figure a screen or report needs for one booking, computed together
from a single "today" so the numbers cannot disagree with each other.
Recompute on every read: the inputs (dates, rates, payments, readings) are
the only truth.
*/
package rental

import (
	"github.com/shopspring/decimal"

	"github.com/harborview/rental-engine/billing"
)

// Financials bundles the derived money figures for one booking as of one
// calendar day.
type Financials struct {
	BookingID string
	AsOf      billing.Date

	LineItems []billing.LineItem

	RentCost  decimal.Decimal
	MeterCost decimal.Decimal
	WaterCost decimal.Decimal
	TotalCost decimal.Decimal

	AmountPaid decimal.Decimal
	RentPaid   decimal.Decimal
	AmountDue  decimal.Decimal

	DueNowRent     decimal.Decimal
	DueNowWater    decimal.Decimal
	DueNowElectric decimal.Decimal
	DueNow         decimal.Decimal
	BalanceNow     decimal.Decimal
	Owing          bool

	NextPaymentDue billing.Date

	Deposit          decimal.Decimal
	DepositCollected bool
	DepositRefunded  bool
}

// ComputeFinancials derives the full money picture of a booking as of
// today. Malformed bookings produce zeroed figures, never an error.
func ComputeFinancials(b *Booking, today billing.Date) Financials {
	checkIn, checkout := b.dates()
	items := billing.Segment(checkIn, checkout, b.Rates())

	totalPrice := decimal.NewFromFloat(b.TotalPrice)
	commission := decimal.NewFromFloat(b.Commission)
	waterCharge := decimal.NewFromFloat(b.MonthlyWaterCharge)
	electricRate := decimal.NewFromFloat(b.ElectricRate)
	payments := b.billingPayments()
	readings := b.billingReadings()

	rent := billing.RentCost(totalPrice, commission, items)
	meter := billing.MeterCost(readings, electricRate)
	water := billing.WaterCost(checkIn, checkout, waterCharge)
	total := billing.TotalCost(rent, meter, water)

	dueRent := billing.DueNowRent(checkIn, totalPrice, commission, items, today)
	dueWater := billing.DueNowWater(checkIn, waterCharge, today)
	dueElectric := billing.DueNowElectric(checkIn, readings, electricRate, today)
	dueNow := billing.DueNow(dueRent, dueElectric, dueWater)
	balance := billing.BalanceNow(dueNow, payments)

	return Financials{
		BookingID:        b.ID,
		AsOf:             today,
		LineItems:        items,
		RentCost:         rent,
		MeterCost:        meter,
		WaterCost:        water,
		TotalCost:        total,
		AmountPaid:       billing.AmountPaid(payments),
		RentPaid:         billing.RentPaid(payments),
		AmountDue:        billing.AmountDue(total, payments),
		DueNowRent:       dueRent,
		DueNowWater:      dueWater,
		DueNowElectric:   dueElectric,
		DueNow:           dueNow,
		BalanceNow:       balance,
		Owing:            billing.IsOwed(balance),
		NextPaymentDue:   billing.NextPaymentDueDate(checkIn, billing.RentCadence(b.RentType), today),
		Deposit:          decimal.NewFromFloat(b.Deposit),
		DepositCollected: b.DepositCollected,
		DepositRefunded:  b.DepositRefunded,
	}
}
