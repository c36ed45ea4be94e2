/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Stored entities
  (properties, units, bookings, expenses) carry their own JSON tags and go
  over the wire as-is; the types here cover the DERIVED surfaces, where
  decimal amounts and calendar dates need an explicit wire form:
  - FinancialsDTO: the full money picture of one booking
  - BookingRowDTO: one row of the filter/sort table
  - ReminderDTO: generated + manual reminders

AMOUNTS:
  Internally money is decimal; on the wire it is a JSON number. Conversion
  happens here and only here, at the boundary.

SEE ALSO:
  - handlers.go: uses these types
  - rental/financials.go: the computed source of FinancialsDTO
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/harborview/rental-engine/billing"
	"github.com/harborview/rental-engine/rental"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LineItemDTO is one billable segment of a stay.
type LineItemDTO struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Cost      float64 `json:"cost"`
	Type      string  `json:"type"`
	Rate      float64 `json:"rate"`
}

// FinancialsDTO is the derived money picture of one booking as of one day.
type FinancialsDTO struct {
	BookingID string        `json:"bookingId"`
	AsOf      string        `json:"asOf"`
	LineItems []LineItemDTO `json:"lineItems"`

	RentCost  float64 `json:"rentCost"`
	MeterCost float64 `json:"meterCost"`
	WaterCost float64 `json:"waterCost"`
	TotalCost float64 `json:"totalCost"`

	AmountPaid float64 `json:"amountPaid"`
	RentPaid   float64 `json:"rentPaid"`
	AmountDue  float64 `json:"amountDue"`

	DueNowRent     float64 `json:"dueNowRent"`
	DueNowWater    float64 `json:"dueNowWater"`
	DueNowElectric float64 `json:"dueNowElectric"`
	DueNow         float64 `json:"dueNow"`
	BalanceNow     float64 `json:"balanceNow"`
	Owing          bool    `json:"owing"`

	NextPaymentDue string `json:"nextPaymentDue,omitempty"`

	Deposit          float64 `json:"deposit"`
	DepositCollected bool    `json:"depositCollected"`
	DepositRefunded  bool    `json:"depositRefunded"`
}

// BookingRowDTO is one row of the bookings table view.
type BookingRowDTO struct {
	BookingID string  `json:"bookingId"`
	UnitID    string  `json:"unitId"`
	UnitName  string  `json:"unitName"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	CheckIn   string  `json:"checkIn"`
	Checkout  string  `json:"checkout"`
	RateType  string  `json:"rateType"`
	Rate      float64 `json:"rate"`
	Deposit   float64 `json:"deposit"`
	TotalCost float64 `json:"totalCost"`
	TotalPaid float64 `json:"totalPaid"`
	DueNow    float64 `json:"dueNow"`
	TotalOwed float64 `json:"totalOwed"`
}

// ReminderDTO is a generated or manual reminder.
type ReminderDTO struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	UnitID string `json:"unitId"`
	Text   string `json:"text"`
	Note   string `json:"note,omitempty"`
}

// UnitReportDTO / PropertyReportDTO / ReportDTO mirror rental.Report.
type UnitReportDTO struct {
	UnitID       string  `json:"unitId"`
	UnitName     string  `json:"unitName"`
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Net          float64 `json:"net"`
	DepositsHeld float64 `json:"depositsHeld"`
}

type PropertyReportDTO struct {
	PropertyID   string          `json:"propertyId"`
	PropertyName string          `json:"propertyName"`
	Units        []UnitReportDTO `json:"units"`
	Income       float64         `json:"income"`
	Expenses     float64         `json:"expenses"`
	Net          float64         `json:"net"`
}

type ReportDTO struct {
	Properties         []PropertyReportDTO `json:"properties"`
	TotalIncome        float64             `json:"totalIncome"`
	TotalExpenses      float64             `json:"totalExpenses"`
	TotalNet           float64             `json:"totalNet"`
	ExpensesByCategory map[string]float64  `json:"expensesByCategory"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func amount(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func dateString(d billing.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func toLineItemDTOs(items []billing.LineItem) []LineItemDTO {
	out := make([]LineItemDTO, len(items))
	for i, item := range items {
		out[i] = LineItemDTO{
			StartDate: dateString(item.StartDate),
			EndDate:   dateString(item.EndDate),
			Cost:      amount(item.Cost),
			Type:      string(item.Type),
			Rate:      amount(item.Rate),
		}
	}
	return out
}

func toFinancialsDTO(fin rental.Financials) FinancialsDTO {
	return FinancialsDTO{
		BookingID:        fin.BookingID,
		AsOf:             dateString(fin.AsOf),
		LineItems:        toLineItemDTOs(fin.LineItems),
		RentCost:         amount(fin.RentCost),
		MeterCost:        amount(fin.MeterCost),
		WaterCost:        amount(fin.WaterCost),
		TotalCost:        amount(fin.TotalCost),
		AmountPaid:       amount(fin.AmountPaid),
		RentPaid:         amount(fin.RentPaid),
		AmountDue:        amount(fin.AmountDue),
		DueNowRent:       amount(fin.DueNowRent),
		DueNowWater:      amount(fin.DueNowWater),
		DueNowElectric:   amount(fin.DueNowElectric),
		DueNow:           amount(fin.DueNow),
		BalanceNow:       amount(fin.BalanceNow),
		Owing:            fin.Owing,
		NextPaymentDue:   dateString(fin.NextPaymentDue),
		Deposit:          amount(fin.Deposit),
		DepositCollected: fin.DepositCollected,
		DepositRefunded:  fin.DepositRefunded,
	}
}

func toRowDTOs(rows []billing.BookingRow) []BookingRowDTO {
	out := make([]BookingRowDTO, len(rows))
	for i, row := range rows {
		out[i] = BookingRowDTO{
			BookingID: row.BookingID,
			UnitID:    row.UnitID,
			UnitName:  row.UnitName,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			CheckIn:   dateString(row.CheckIn),
			Checkout:  dateString(row.Checkout),
			RateType:  string(row.RateType),
			Rate:      amount(row.Rate),
			Deposit:   amount(row.Deposit),
			TotalCost: amount(row.TotalCost),
			TotalPaid: amount(row.TotalPaid),
			DueNow:    amount(row.DueNow),
			TotalOwed: amount(row.TotalOwed),
		}
	}
	return out
}

func toReminderDTOs(reminders []billing.Reminder) []ReminderDTO {
	out := make([]ReminderDTO, len(reminders))
	for i, r := range reminders {
		out[i] = ReminderDTO{
			ID:     r.ID,
			Date:   dateString(r.Date),
			Type:   string(r.Type),
			UnitID: r.UnitID,
			Text:   r.Text,
			Note:   r.Note,
		}
	}
	return out
}

func toReportDTO(report *rental.Report) ReportDTO {
	dto := ReportDTO{
		TotalIncome:        amount(report.TotalIncome),
		TotalExpenses:      amount(report.TotalExpenses),
		TotalNet:           amount(report.TotalNet),
		ExpensesByCategory: make(map[string]float64, len(report.ExpensesByCategory)),
	}
	for category, total := range report.ExpensesByCategory {
		dto.ExpensesByCategory[category] = amount(total)
	}
	for _, pr := range report.Properties {
		prd := PropertyReportDTO{
			PropertyID:   pr.PropertyID,
			PropertyName: pr.PropertyName,
			Income:       amount(pr.Income),
			Expenses:     amount(pr.Expenses),
			Net:          amount(pr.Net),
		}
		for _, ur := range pr.Units {
			prd.Units = append(prd.Units, UnitReportDTO{
				UnitID:       ur.UnitID,
				UnitName:     ur.UnitName,
				Income:       amount(ur.Income),
				Expenses:     amount(ur.Expenses),
				Net:          amount(ur.Net),
				DepositsHeld: amount(ur.DepositsHeld),
			})
		}
		dto.Properties = append(dto.Properties, prd)
	}
	return dto
}
