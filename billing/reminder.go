/*
reminder.go - Rolling-window reminder generation

PURPOSE:
  Scans all units and stays and produces time-stamped reminder events:
  vacancies as of today, check-ins and checkouts inside a 30-day forward
  window, and recurring rent due dates walked monthly from check-in.

IDEMPOTENCY:
  Generation is a pure recomputation: run it fresh whenever bookings or
  units change, never patch a previous result incrementally. IDs are
  derived from (type, unit, date) so two runs over identical input produce
  an identical set. User-added manual reminders are a separate overlay
  persisted elsewhere; this function never emits them.
*/
package billing

import (
	"fmt"
	"sort"
)

// ReminderType classifies a generated or manual reminder.
type ReminderType string

const (
	ReminderCheckIn  ReminderType = "checkin"
	ReminderCheckout ReminderType = "checkout"
	ReminderRent     ReminderType = "rent"
	ReminderVacant   ReminderType = "vacant"
	ReminderOther    ReminderType = "other"
)

// Reminder is an ephemeral derived event. Only manual reminders (type
// "other", created by users) are ever persisted.
type Reminder struct {
	ID     string
	Date   Date
	Type   ReminderType
	UnitID string
	Text   string
	Note   string
}

// UnitInfo is the slice of unit state reminder generation needs.
type UnitInfo struct {
	ID   string
	Name string
}

// StayInfo is the slice of booking state reminder generation needs.
type StayInfo struct {
	ID        string
	UnitID    string
	GuestName string
	CheckIn   Date
	Checkout  Date
}

// ReminderWindowDays is the forward horizon for check-in/checkout/rent
// reminders. Vacancy reminders are always dated today itself.
const ReminderWindowDays = 30

// GenerateReminders produces the reminder set for a single "today"
// snapshot. Results are ordered by date, then type, then unit.
func GenerateReminders(units []UnitInfo, stays []StayInfo, today Date) []Reminder {
	windowEnd := today.AddDays(ReminderWindowDays)
	inWindow := func(d Date) bool {
		return d.After(today) && d.BeforeOrEqual(windowEnd)
	}

	unitNames := make(map[string]string, len(units))
	for _, u := range units {
		unitNames[u.ID] = u.Name
	}

	var reminders []Reminder

	// Vacancies: units with no stay covering today.
	occupied := make(map[string]bool)
	for _, s := range stays {
		if s.CheckIn.IsZero() || s.Checkout.IsZero() {
			continue
		}
		if s.CheckIn.BeforeOrEqual(today) && today.Before(s.Checkout) {
			occupied[s.UnitID] = true
		}
	}
	for _, u := range units {
		if occupied[u.ID] {
			continue
		}
		reminders = append(reminders, Reminder{
			ID:     reminderID(ReminderVacant, u.ID, today),
			Date:   today,
			Type:   ReminderVacant,
			UnitID: u.ID,
			Text:   fmt.Sprintf("%s is vacant", u.Name),
		})
	}

	// Per-stay events inside the window.
	for _, s := range stays {
		if s.CheckIn.IsZero() || s.Checkout.IsZero() {
			continue
		}
		name := unitNames[s.UnitID]

		if inWindow(s.CheckIn) {
			reminders = append(reminders, Reminder{
				ID:     reminderID(ReminderCheckIn, s.UnitID, s.CheckIn),
				Date:   s.CheckIn,
				Type:   ReminderCheckIn,
				UnitID: s.UnitID,
				Text:   fmt.Sprintf("Check-in: %s at %s", s.GuestName, name),
			})
		}
		if inWindow(s.Checkout) {
			reminders = append(reminders, Reminder{
				ID:     reminderID(ReminderCheckout, s.UnitID, s.Checkout),
				Date:   s.Checkout,
				Type:   ReminderCheckout,
				UnitID: s.UnitID,
				Text:   fmt.Sprintf("Checkout: %s at %s", s.GuestName, name),
			})
		}

		// Recurring rent due dates: monthly anniversaries of check-in,
		// first occurrence strictly after check-in, while before checkout.
		for due := s.CheckIn.AddMonths(1); due.Before(s.Checkout); due = due.AddMonths(1) {
			if !inWindow(due) {
				continue
			}
			reminders = append(reminders, Reminder{
				ID:     reminderID(ReminderRent, s.UnitID, due),
				Date:   due,
				Type:   ReminderRent,
				UnitID: s.UnitID,
				Text:   fmt.Sprintf("Rent due: %s at %s", s.GuestName, name),
			})
		}
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.UnitID < b.UnitID
	})
	return reminders
}

func reminderID(kind ReminderType, unitID string, date Date) string {
	return fmt.Sprintf("%s-%s-%s", kind, unitID, date)
}
