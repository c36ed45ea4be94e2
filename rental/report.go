/*
report.go - Portfolio financial report

Aggregates income (non-deposit payments) and expenses per property and
unit. Deposits are tracked, not earned: they never appear in income. Pure
aggregation over stored entities; no date proration happens here.
*/
package rental

import (
	"github.com/shopspring/decimal"

	"github.com/harborview/rental-engine/billing"
)

// UnitReport is the financial summary of one unit.
type UnitReport struct {
	UnitID   string
	UnitName string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	// Deposits currently held: collected and not yet refunded.
	DepositsHeld decimal.Decimal
}

// PropertyReport rolls its units up and adds property-level expenses.
type PropertyReport struct {
	PropertyID   string
	PropertyName string
	Units        []UnitReport
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Net          decimal.Decimal
}

// Report is the whole-portfolio financial summary.
type Report struct {
	Properties         []PropertyReport
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	TotalNet           decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
}

// BuildReport aggregates income and expenses across the portfolio.
func BuildReport(properties []Property, units []Unit, bookings []Booking, expenses []Expense) *Report {
	incomeByUnit := make(map[string]decimal.Decimal)
	depositsByUnit := make(map[string]decimal.Decimal)
	for i := range bookings {
		b := &bookings[i]
		paid := billing.RentPaid(b.billingPayments())
		incomeByUnit[b.UnitID] = incomeByUnit[b.UnitID].Add(paid)
		if b.DepositCollected && !b.DepositRefunded {
			depositsByUnit[b.UnitID] = depositsByUnit[b.UnitID].Add(decimal.NewFromFloat(b.Deposit))
		}
	}

	expensesByUnit := make(map[string]decimal.Decimal)
	expensesByProperty := make(map[string]decimal.Decimal)
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(amount)
		switch {
		case e.UnitID != "":
			expensesByUnit[e.UnitID] = expensesByUnit[e.UnitID].Add(amount)
		case e.PropertyID != "":
			expensesByProperty[e.PropertyID] = expensesByProperty[e.PropertyID].Add(amount)
		}
	}

	report := &Report{ExpensesByCategory: byCategory}
	for _, p := range properties {
		pr := PropertyReport{PropertyID: p.ID, PropertyName: p.Name}
		for _, u := range units {
			if u.PropertyID != p.ID {
				continue
			}
			ur := UnitReport{
				UnitID:       u.ID,
				UnitName:     u.Name,
				Income:       incomeByUnit[u.ID],
				Expenses:     expensesByUnit[u.ID],
				DepositsHeld: depositsByUnit[u.ID],
			}
			ur.Net = ur.Income.Sub(ur.Expenses)
			pr.Units = append(pr.Units, ur)
			pr.Income = pr.Income.Add(ur.Income)
			pr.Expenses = pr.Expenses.Add(ur.Expenses)
		}
		pr.Expenses = pr.Expenses.Add(expensesByProperty[p.ID])
		pr.Net = pr.Income.Sub(pr.Expenses)
		report.Properties = append(report.Properties, pr)
		report.TotalIncome = report.TotalIncome.Add(pr.Income)
		report.TotalExpenses = report.TotalExpenses.Add(pr.Expenses)
	}
	report.TotalNet = report.TotalIncome.Sub(report.TotalExpenses)
	return report
}
