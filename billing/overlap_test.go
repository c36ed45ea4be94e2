package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harborview/rental-engine/billing"
)

func stay(id string, in, out billing.Date) billing.Stay {
	return billing.Stay{ID: id, CheckIn: in, Checkout: out}
}

func TestOverlaps_IntersectingRanges(t *testing.T) {
	candidate := stay("a", d(2025, time.January, 10), d(2025, time.January, 20))
	existing := []billing.Stay{stay("b", d(2025, time.January, 15), d(2025, time.January, 25))}

	assert.True(t, billing.Overlaps(candidate, existing))
}

func TestOverlaps_BackToBack_CheckoutExclusive(t *testing.T) {
	// Checkout on the 15th and check-in on the 15th share no occupied day.
	candidate := stay("a", d(2025, time.January, 10), d(2025, time.January, 15))
	existing := []billing.Stay{stay("b", d(2025, time.January, 15), d(2025, time.January, 25))}

	assert.False(t, billing.Overlaps(candidate, existing))
}

func TestOverlaps_ContainedStay(t *testing.T) {
	candidate := stay("a", d(2025, time.January, 12), d(2025, time.January, 14))
	existing := []billing.Stay{stay("b", d(2025, time.January, 1), d(2025, time.February, 1))}

	assert.True(t, billing.Overlaps(candidate, existing))
}

func TestOverlaps_EditingExcludesOwnPreviousVersion(t *testing.T) {
	// GIVEN: editing booking "a" to shift its dates
	// THEN: its stored version must not conflict with itself
	candidate := stay("a", d(2025, time.January, 12), d(2025, time.January, 18))
	existing := []billing.Stay{
		stay("a", d(2025, time.January, 10), d(2025, time.January, 20)),
	}

	assert.False(t, billing.Overlaps(candidate, existing))
}

func TestOverlaps_MalformedCandidateRejected(t *testing.T) {
	existing := []billing.Stay{stay("b", d(2025, time.June, 1), d(2025, time.July, 1))}

	inverted := stay("a", d(2025, time.January, 20), d(2025, time.January, 10))
	assert.True(t, billing.Overlaps(inverted, existing), "inverted dates are rejected")

	missing := stay("a", billing.Date{}, d(2025, time.January, 10))
	assert.True(t, billing.Overlaps(missing, existing), "missing check-in is rejected")
}

func TestOverlaps_MalformedExistingIgnored(t *testing.T) {
	// A broken stored record must not block every future booking.
	candidate := stay("a", d(2025, time.January, 10), d(2025, time.January, 15))
	existing := []billing.Stay{stay("b", billing.Date{}, billing.Date{})}

	assert.False(t, billing.Overlaps(candidate, existing))
}
