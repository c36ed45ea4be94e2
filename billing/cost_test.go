package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/rental-engine/billing"
)

// =============================================================================
// RENT BASIS
// =============================================================================

func TestRentCost_OverrideBeatsLineItems(t *testing.T) {
	// GIVEN: a positive all-in price with a commission
	// THEN: rent is override minus commission, line items ignored
	items := billing.Segment(d(2025, time.January, 1), d(2025, time.February, 1), stdRates())

	rent := billing.RentCost(money(12000), money(1500), items)
	assert.True(t, rent.Equal(money(10500)))
}

func TestRentCost_ZeroOverride_SumsLineItems(t *testing.T) {
	items := billing.Segment(d(2025, time.January, 1), d(2025, time.February, 1), stdRates())

	rent := billing.RentCost(decimal.Zero, decimal.Zero, items)
	assert.True(t, rent.Equal(money(9000)))
}

func TestRentCost_NegativeOverrideIgnored(t *testing.T) {
	items := billing.Segment(d(2025, time.January, 1), d(2025, time.February, 1), stdRates())

	rent := billing.RentCost(money(-1), decimal.Zero, items)
	assert.True(t, rent.Equal(money(9000)), "non-positive override falls back to items")
}

// =============================================================================
// METER COST
// =============================================================================

func TestMeterCost_FirstToLastDelta(t *testing.T) {
	readings := []billing.MeterReading{
		{Date: d(2025, time.January, 1), Reading: money(100)},
		{Date: d(2025, time.February, 1), Reading: money(150)},
	}

	cost := billing.MeterCost(readings, money(8))
	assert.True(t, cost.Equal(money(400)))
}

func TestMeterCost_FewerThanTwoReadings_Zero(t *testing.T) {
	assert.True(t, billing.MeterCost(nil, money(8)).IsZero())
	one := []billing.MeterReading{{Date: d(2025, time.January, 1), Reading: money(100)}}
	assert.True(t, billing.MeterCost(one, money(8)).IsZero())
}

func TestMeterCost_ReversedMeter_ClampsToZero(t *testing.T) {
	// A replaced or misread meter must never produce a negative charge.
	readings := []billing.MeterReading{
		{Date: d(2025, time.January, 1), Reading: money(150)},
		{Date: d(2025, time.February, 1), Reading: money(100)},
	}

	assert.True(t, billing.MeterCost(readings, money(8)).IsZero())
}

func TestMeterCost_OrdersByDate_WithoutMutatingInput(t *testing.T) {
	// GIVEN: readings stored out of date order
	// THEN: cost uses the earliest/latest by date, and the caller's slice
	//       keeps its original order
	readings := []billing.MeterReading{
		{Date: d(2025, time.March, 1), Reading: money(200)},
		{Date: d(2025, time.January, 1), Reading: money(100)},
		{Date: d(2025, time.February, 1), Reading: money(160)},
	}

	cost := billing.MeterCost(readings, money(8))
	assert.True(t, cost.Equal(money(800)), "delta 100 at rate 8")
	assert.True(t, readings[0].Date.Equal(d(2025, time.March, 1)), "input order untouched")
}

// =============================================================================
// WATER COST
// =============================================================================

func TestWaterCost_WholeMonths(t *testing.T) {
	cost := billing.WaterCost(d(2025, time.January, 1), d(2025, time.March, 1), money(200))
	assert.True(t, cost.Equal(money(400)), "two whole months")
}

func TestWaterCost_RemainderUnder28Days_NotCharged(t *testing.T) {
	// One month plus 14 days: remainder below the rounding threshold
	cost := billing.WaterCost(d(2025, time.January, 1), d(2025, time.February, 15), money(200))
	assert.True(t, cost.Equal(money(200)))
}

func TestWaterCost_Remainder28Days_RoundsUpToFullMonth(t *testing.T) {
	// Mar 1 + 1 whole month = Apr 1, then 28 leftover days to Apr 29
	months, rem := billing.WholeMonths(d(2025, time.March, 1), d(2025, time.April, 29))
	require.Equal(t, 1, months)
	require.Equal(t, 28, rem)

	cost := billing.WaterCost(d(2025, time.March, 1), d(2025, time.April, 29), money(200))
	assert.True(t, cost.Equal(money(400)), "1 whole month + 28 days rounds up")
}

// =============================================================================
// PAYMENT AGGREGATION
// =============================================================================

func TestAmountDue_DepositNeverReducesRentOwed(t *testing.T) {
	// GIVEN: total cost 9000 fully "paid" by a deposit
	// THEN: the stay still owes 9000
	payments := []billing.Payment{
		{Date: d(2025, time.January, 2), Amount: money(9000), Category: billing.PaymentDeposit},
	}

	due := billing.AmountDue(money(9000), payments)
	assert.True(t, due.Equal(money(9000)))
}

func TestPaymentAggregates(t *testing.T) {
	payments := []billing.Payment{
		{Amount: money(5000), Category: billing.PaymentRent},
		{Amount: money(400), Category: billing.PaymentUtility},
		{Amount: money(3000), Category: billing.PaymentDeposit},
		{Amount: money(100), Category: billing.PaymentOther},
	}

	assert.True(t, billing.AmountPaid(payments).Equal(money(8500)))
	assert.True(t, billing.RentPaid(payments).Equal(money(5500)))
	assert.True(t, billing.AmountDue(money(9000), payments).Equal(money(3500)))
}

func TestTotalCost_SumsComponents(t *testing.T) {
	total := billing.TotalCost(money(9000), money(400), money(200))
	assert.True(t, total.Equal(money(9600)))
}
