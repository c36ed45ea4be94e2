package rental

import (
	"github.com/harborview/rental-engine/billing"
)

// ValidateBookingDates rejects a booking whose dates are missing,
// unparsable, or inverted. Equal check-in and checkout (a zero-length
// stay) is allowed by the data model and bills nothing.
func ValidateBookingDates(b *Booking) error {
	checkIn, errIn := billing.ParseDate(b.CheckIn)
	checkout, errOut := billing.ParseDate(b.Checkout)
	if errIn != nil || errOut != nil || checkIn.After(checkout) {
		return ErrInvalidDates
	}
	return nil
}

// CheckOverlap validates a candidate booking against the other stays on
// its unit. When editing, the candidate's own stored version is excluded
// by identity. The caller passes the unit's current bookings; this stays a
// pure check so it tests without a store.
func CheckOverlap(candidate *Booking, existing []Booking) error {
	stays := make([]billing.Stay, 0, len(existing))
	for i := range existing {
		if existing[i].UnitID != candidate.UnitID {
			continue
		}
		stays = append(stays, existing[i].Stay())
	}

	if !billing.Overlaps(candidate.Stay(), stays) {
		return nil
	}

	// Identify the blocking stay for the error message. Overlaps already
	// said "no"; this pass only attributes the conflict.
	cand := candidate.Stay()
	for _, s := range stays {
		if s.ID == cand.ID || s.CheckIn.IsZero() || s.Checkout.IsZero() {
			continue
		}
		if cand.CheckIn.Before(s.Checkout) && cand.Checkout.After(s.CheckIn) {
			return &OverlapError{UnitID: candidate.UnitID, BookingID: candidate.ID, ConflictID: s.ID}
		}
	}
	return &OverlapError{UnitID: candidate.UnitID, BookingID: candidate.ID}
}
