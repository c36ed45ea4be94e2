/*
sortfilter.go - Filtering and ordering stays by derived financial fields

Operates on precomputed rows rather than raw bookings: the sortable keys
(total cost, due now, total owed) are outputs of cost.go/duenow.go, and
recomputing them per comparison would re-run segmentation O(n log n) times.
Callers build rows once per pass with a single "today" and hand them over.
*/
package billing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BookingRow is one stay flattened to its filterable and sortable fields.
type BookingRow struct {
	BookingID string
	UnitID    string
	UnitName  string
	FirstName string
	LastName  string
	CheckIn   Date
	Checkout  Date

	// First line item's rate type and rate; zero values when a stay
	// produced no items.
	RateType SegmentType
	Rate     decimal.Decimal

	Deposit   decimal.Decimal
	TotalCost decimal.Decimal
	TotalPaid decimal.Decimal
	DueNow    decimal.Decimal
	TotalOwed decimal.Decimal
}

// OwedStatus filters stays on whether anything is still outstanding.
type OwedStatus string

const (
	OwedAny  OwedStatus = ""
	Owed     OwedStatus = "owed"
	OwedPaid OwedStatus = "paid"
)

// Filter narrows a stay collection. Zero-valued fields match everything.
type Filter struct {
	UnitID        string
	GuestQuery    string // case-insensitive substring of first+last name
	CheckInMonth  string // month name, e.g. "January"
	CheckoutMonth string
	OwedStatus    OwedStatus
}

func (f Filter) matches(row BookingRow) bool {
	if f.UnitID != "" && row.UnitID != f.UnitID {
		return false
	}
	if f.GuestQuery != "" {
		full := strings.ToLower(row.FirstName + " " + row.LastName)
		if !strings.Contains(full, strings.ToLower(f.GuestQuery)) {
			return false
		}
	}
	if f.CheckInMonth != "" && !monthMatches(row.CheckIn, f.CheckInMonth) {
		return false
	}
	if f.CheckoutMonth != "" && !monthMatches(row.Checkout, f.CheckoutMonth) {
		return false
	}
	switch f.OwedStatus {
	case Owed:
		return IsOwed(row.TotalOwed)
	case OwedPaid:
		return !IsOwed(row.TotalOwed)
	}
	return true
}

func monthMatches(d Date, month string) bool {
	if d.IsZero() {
		return false
	}
	return strings.EqualFold(d.Month().String(), month)
}

// SortKey selects the ordering field.
type SortKey string

const (
	SortUnit      SortKey = "unit"
	SortLastName  SortKey = "lastName"
	SortFirstName SortKey = "firstName"
	SortCheckIn   SortKey = "checkIn"
	SortCheckout  SortKey = "checkout"
	SortRateType  SortKey = "rateType"
	SortRate      SortKey = "rate"
	SortDeposit   SortKey = "deposit"
	SortTotalCost SortKey = "totalCost"
	SortTotalPaid SortKey = "totalPaid"
	SortDueNow    SortKey = "dueNow"
	SortTotalOwed SortKey = "totalOwed"
)

// Query filters then orders a row collection. The input slice is never
// mutated; ties keep input order (stable sort). An unknown sort key leaves
// the filtered rows in input order.
func Query(rows []BookingRow, filter Filter, key SortKey, descending bool) []BookingRow {
	out := make([]BookingRow, 0, len(rows))
	for _, row := range rows {
		if filter.matches(row) {
			out = append(out, row)
		}
	}

	less := lessFunc(key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b BookingRow) bool {
	byMoney := func(get func(BookingRow) decimal.Decimal) func(a, b BookingRow) bool {
		return func(a, b BookingRow) bool { return get(a).LessThan(get(b)) }
	}
	switch key {
	case SortUnit:
		return func(a, b BookingRow) bool { return a.UnitName < b.UnitName }
	case SortLastName:
		return func(a, b BookingRow) bool { return a.LastName < b.LastName }
	case SortFirstName:
		return func(a, b BookingRow) bool { return a.FirstName < b.FirstName }
	case SortCheckIn:
		return func(a, b BookingRow) bool { return a.CheckIn.Before(b.CheckIn) }
	case SortCheckout:
		return func(a, b BookingRow) bool { return a.Checkout.Before(b.Checkout) }
	case SortRateType:
		return func(a, b BookingRow) bool { return a.RateType < b.RateType }
	case SortRate:
		return byMoney(func(r BookingRow) decimal.Decimal { return r.Rate })
	case SortDeposit:
		return byMoney(func(r BookingRow) decimal.Decimal { return r.Deposit })
	case SortTotalCost:
		return byMoney(func(r BookingRow) decimal.Decimal { return r.TotalCost })
	case SortTotalPaid:
		return byMoney(func(r BookingRow) decimal.Decimal { return r.TotalPaid })
	case SortDueNow:
		return byMoney(func(r BookingRow) decimal.Decimal { return r.DueNow })
	case SortTotalOwed:
		return byMoney(func(r BookingRow) decimal.Decimal { return r.TotalOwed })
	}
	return nil
}
