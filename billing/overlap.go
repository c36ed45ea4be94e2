/*
overlap.go - Stay conflict detection

Two stays on the same unit conflict iff their [checkIn, checkout) ranges
intersect. Checkout is exclusive, so a checkout on day D and a check-in on
day D are back-to-back, not overlapping. Malformed candidates are treated
as overlapping: rejecting a broken record beats double-booking a unit.
*/
package billing

// Stay is the minimal shape overlap detection needs. ID identifies the
// stay so that editing an existing booking excludes its previous version
// from the comparison set.
type Stay struct {
	ID       string
	CheckIn  Date
	Checkout Date
}

// Overlaps reports whether the candidate conflicts with any existing stay
// on the same unit. A candidate with missing dates or checkIn > checkout
// is reported as overlapping (rejected defensively).
func Overlaps(candidate Stay, existing []Stay) bool {
	if candidate.CheckIn.IsZero() || candidate.Checkout.IsZero() ||
		candidate.CheckIn.After(candidate.Checkout) {
		return true
	}
	for _, other := range existing {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.CheckIn.IsZero() || other.Checkout.IsZero() {
			continue
		}
		if candidate.CheckIn.Before(other.Checkout) && candidate.Checkout.After(other.CheckIn) {
			return true
		}
	}
	return false
}
