package rental

import (
	"github.com/harborview/rental-engine/billing"
)

// BuildRows flattens bookings into the filterable/sortable rows the view
// engine consumes. One "today" is threaded through every row so derived
// fields across the table stay mutually consistent.
func BuildRows(bookings []Booking, units []Unit, today billing.Date) []billing.BookingRow {
	unitNames := make(map[string]string, len(units))
	for _, u := range units {
		unitNames[u.ID] = u.Name
	}

	rows := make([]billing.BookingRow, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		fin := ComputeFinancials(b, today)
		checkIn, checkout := b.dates()

		row := billing.BookingRow{
			BookingID: b.ID,
			UnitID:    b.UnitID,
			UnitName:  unitNames[b.UnitID],
			FirstName: b.FirstName,
			LastName:  b.LastName,
			CheckIn:   checkIn,
			Checkout:  checkout,
			Deposit:   fin.Deposit,
			TotalCost: fin.TotalCost,
			TotalPaid: fin.RentPaid,
			DueNow:    fin.DueNow,
			TotalOwed: fin.AmountDue,
		}
		if len(fin.LineItems) > 0 {
			row.RateType = fin.LineItems[0].Type
			row.Rate = fin.LineItems[0].Rate
		}
		rows = append(rows, row)
	}
	return rows
}

// GenerateReminders produces the derived reminder set for the portfolio and
// appends the persisted manual overlay. Manual reminders with unparsable
// dates are kept (dated zero) rather than silently dropped.
func GenerateReminders(units []Unit, bookings []Booking, manual []Reminder, today billing.Date) []billing.Reminder {
	unitInfos := make([]billing.UnitInfo, len(units))
	for i, u := range units {
		unitInfos[i] = billing.UnitInfo{ID: u.ID, Name: u.Name}
	}
	stays := make([]billing.StayInfo, len(bookings))
	for i := range bookings {
		stays[i] = bookings[i].StayInfo()
	}

	out := billing.GenerateReminders(unitInfos, stays, today)
	for _, m := range manual {
		date, _ := billing.ParseDate(m.Date)
		out = append(out, billing.Reminder{
			ID:     m.ID,
			Date:   date,
			Type:   billing.ReminderType(m.Type),
			UnitID: m.UnitID,
			Text:   m.Text,
			Note:   m.Note,
		})
	}
	return out
}
