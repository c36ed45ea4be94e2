// Package rental defines the portfolio entities (properties, units, stays,
// expenses) and the services that wire them into the billing engine.
// Entities carry raw strings and floats the way they arrive from clients;
// conversion to billing's Date/decimal types happens at computation time and
// fails closed, so one bad record never sinks a whole report.
package rental

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborview/rental-engine/billing"
)

// Default charges applied when a unit or booking doesn't specify its own.
const (
	DefaultMonthlyWaterCharge = 200
	DefaultElectricRate       = 8
)

// Property groups units under one roof (or one owner).
type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Unit is a rentable space with its base rate card.
type Unit struct {
	ID                 string  `json:"id"`
	PropertyID         string  `json:"propertyId"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	InternalNotes      string  `json:"internalNotes"`
	DailyRate          float64 `json:"dailyRate"`
	WeeklyRate         float64 `json:"weeklyRate"`
	MonthlyRate        float64 `json:"monthlyRate"`
	MonthlyWaterCharge float64 `json:"monthlyWaterCharge"`
}

// Payment is one financial record on a booking. Immutable once saved.
type Payment struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// MeterReading is one utility meter sample on a booking.
type MeterReading struct {
	Date    string  `json:"date"`
	Reading float64 `json:"reading"`
}

// Booking is a guest's stay of a unit for [checkIn, checkout). Rates are
// per-stay overrides that may differ from the unit's defaults. LineItems
// are derived display state, recomputed from dates and rates on
// every read and a stored copy is never authoritative.
type Booking struct {
	ID               string  `json:"id"`
	UnitID           string  `json:"unitId"`
	Name             string  `json:"name"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Source           string  `json:"source"`
	TotalPrice       float64 `json:"totalPrice"`
	Commission       float64 `json:"commission"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	Whatsapp         string  `json:"whatsapp"`
	Instagram        string  `json:"instagram"`
	Line             string  `json:"line"`
	Facebook         string  `json:"facebook"`
	PreferredContact string  `json:"preferredContact"`
	CheckIn          string  `json:"checkIn"`
	Checkout         string  `json:"checkout"`
	Deposit          float64 `json:"deposit"`
	DepositCollected bool    `json:"depositCollected"`
	DepositRefunded  bool    `json:"depositRefunded"`

	MonthlyRate        float64 `json:"monthlyRate"`
	WeeklyRate         float64 `json:"weeklyRate"`
	DailyRate          float64 `json:"dailyRate"`
	MonthlyWaterCharge float64 `json:"monthlyWaterCharge"`
	ElectricRate       float64 `json:"electricRate"`
	RentType           string  `json:"rentType"`

	MeterReadings []MeterReading `json:"meterReadings"`
	Payments      []Payment      `json:"payments"`
	Notes         string         `json:"notes"`
	Status        string         `json:"status"`
}

// Expense is a pure ledger entry against a property or unit.
type Expense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	PropertyID  string  `json:"propertyId"`
	UnitID      string  `json:"unitId"`
}

// Reminder is a user-added manual reminder. Generated reminders are never
// persisted; this overlay is.
type Reminder struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	Type   string `json:"type"`
	UnitID string `json:"unitId"`
	Note   string `json:"note"`
}

// =============================================================================
// ID GENERATION
// =============================================================================

func newID(prefix string) string {
	return fmt.Sprintf("%s-%.8s", prefix, uuid.NewString())
}

func NewPropertyID() string { return newID("prop") }
func NewUnitID() string     { return newID("unit") }
func NewBookingID() string  { return newID("book") }
func NewExpenseID() string  { return newID("expense") }
func NewReminderID() string { return newID("reminder") }

// =============================================================================
// DEFAULTS
// =============================================================================

// ApplyDefaults fills the charge fields the original data model defaults.
func (b *Booking) ApplyDefaults() {
	if b.ID == "" {
		b.ID = NewBookingID()
	}
	if b.MonthlyWaterCharge == 0 {
		b.MonthlyWaterCharge = DefaultMonthlyWaterCharge
	}
	if b.ElectricRate == 0 {
		b.ElectricRate = DefaultElectricRate
	}
	if b.RentType == "" {
		b.RentType = string(billing.CadenceMonth)
	}
	if b.Source == "" {
		b.Source = "direct"
	}
	if b.PreferredContact == "" {
		b.PreferredContact = "Whatsapp"
	}
	if b.Status == "" {
		b.Status = "future"
	}
}

// ApplyDefaults fills a unit's default water charge and id.
func (u *Unit) ApplyDefaults() {
	if u.ID == "" {
		u.ID = NewUnitID()
	}
	if u.MonthlyWaterCharge == 0 {
		u.MonthlyWaterCharge = DefaultMonthlyWaterCharge
	}
}

// =============================================================================
// CONVERSIONS TO BILLING SHAPES
// =============================================================================

// dates parses the stay span: zero Dates on malformed input (fail closed).
func (b *Booking) dates() (checkIn, checkout billing.Date) {
	checkIn, _ = billing.ParseDate(b.CheckIn)
	checkout, _ = billing.ParseDate(b.Checkout)
	return checkIn, checkout
}

// Rates returns the per-stay rate schedule.
func (b *Booking) Rates() billing.RateSchedule {
	return billing.RateSchedule{
		Daily:   decimal.NewFromFloat(b.DailyRate),
		Weekly:  decimal.NewFromFloat(b.WeeklyRate),
		Monthly: decimal.NewFromFloat(b.MonthlyRate),
	}
}

// Stay converts the booking to the overlap validator's shape. Unparsable
// dates become zero Dates, which the validator treats as conflicting.
func (b *Booking) Stay() billing.Stay {
	in, out := b.dates()
	return billing.Stay{ID: b.ID, CheckIn: in, Checkout: out}
}

// StayInfo converts the booking to the reminder generator's shape.
func (b *Booking) StayInfo() billing.StayInfo {
	in, out := b.dates()
	guest := b.FirstName
	if b.LastName != "" {
		guest += " " + b.LastName
	}
	return billing.StayInfo{
		ID:        b.ID,
		UnitID:    b.UnitID,
		GuestName: guest,
		CheckIn:   in,
		Checkout:  out,
	}
}

// billingPayments converts the payment records, dropping none: a payment
// with a bad date still counts toward what was paid.
func (b *Booking) billingPayments() []billing.Payment {
	out := make([]billing.Payment, 0, len(b.Payments))
	for _, p := range b.Payments {
		date, _ := billing.ParseDate(p.Date)
		out = append(out, billing.Payment{
			Date:     date,
			Amount:   decimal.NewFromFloat(p.Amount),
			Category: billing.PaymentCategory(p.Category),
		})
	}
	return out
}

// billingReadings converts meter readings; entries with unparsable dates
// sort first and otherwise keep their stored position.
func (b *Booking) billingReadings() []billing.MeterReading {
	out := make([]billing.MeterReading, 0, len(b.MeterReadings))
	for _, r := range b.MeterReadings {
		date, _ := billing.ParseDate(r.Date)
		out = append(out, billing.MeterReading{
			Date:    date,
			Reading: decimal.NewFromFloat(r.Reading),
		})
	}
	return out
}

// LineItems recomputes the stay's billable segments from its current dates
// and rates. Always derive, never store.
func (b *Booking) LineItems() []billing.LineItem {
	in, out := b.dates()
	return billing.Segment(in, out, b.Rates())
}
