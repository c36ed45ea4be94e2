package rental_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/rental-engine/billing"
	"github.com/harborview/rental-engine/rental"
)

func TestBuildRows_DerivedColumns(t *testing.T) {
	b := monthlyBooking()
	units := []rental.Unit{{ID: "unit-1", PropertyID: "prop-1", Name: "Lily1"}}
	today := billing.NewDate(2025, time.February, 10)

	rows := rental.BuildRows([]rental.Booking{b}, units, today)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "book-1", row.BookingID)
	assert.Equal(t, "Lily1", row.UnitName)
	assert.Equal(t, "Ann", row.FirstName)
	assert.Equal(t, billing.SegmentMonth, row.RateType)
	eq(t, 9000, row.Rate, "rate of first line item")
	eq(t, 18800, row.TotalCost, "total cost")
	eq(t, 9000, row.TotalPaid, "rent paid, deposit excluded")
	eq(t, 18600, row.DueNow, "due now")
	eq(t, 9800, row.TotalOwed, "amount due")
	assert.True(t, row.CheckIn.Equal(billing.NewDate(2025, time.January, 1)))
}

func TestBuildRows_UnknownUnitLeavesNameEmpty(t *testing.T) {
	b := monthlyBooking()
	b.UnitID = "unit-gone"

	rows := rental.BuildRows([]rental.Booking{b}, nil, billing.NewDate(2025, time.February, 10))

	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].UnitName)
}

func TestGenerateReminders_ManualOverlayAppended(t *testing.T) {
	units := []rental.Unit{{ID: "unit-1", Name: "Lily1"}}
	b := monthlyBooking()
	today := billing.NewDate(2025, time.February, 20)
	manual := []rental.Reminder{{
		ID:     "rem-custom",
		Date:   "2025-03-05",
		Type:   "other",
		UnitID: "unit-1",
		Text:   "Fix the gate latch",
	}}

	out := rental.GenerateReminders(units, []rental.Booking{b}, manual, today)

	// Derived set: checkout Mar 1 in window, rent due Feb 1 already past so
	// no rent reminder, unit occupied so no vacancy.
	var custom *billing.Reminder
	for i := range out {
		assert.NotEqual(t, billing.ReminderVacant, out[i].Type)
		if out[i].ID == "rem-custom" {
			custom = &out[i]
		}
	}
	require.NotNil(t, custom, "manual reminder carried through")
	assert.Equal(t, billing.ReminderOther, custom.Type)
	assert.Equal(t, "Fix the gate latch", custom.Text)
	assert.True(t, custom.Date.Equal(billing.NewDate(2025, time.March, 5)))
}

func TestGenerateReminders_ManualBadDateKept(t *testing.T) {
	manual := []rental.Reminder{{ID: "rem-1", Date: "someday", Type: "other"}}

	out := rental.GenerateReminders(nil, nil, manual, billing.NewDate(2025, time.February, 20))

	require.Len(t, out, 1)
	assert.Equal(t, "rem-1", out[0].ID)
	assert.True(t, out[0].Date.IsZero())
}
