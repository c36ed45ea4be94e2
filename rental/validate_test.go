package rental_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/rental-engine/rental"
)

func booking(id, unitID, checkIn, checkout string) rental.Booking {
	return rental.Booking{ID: id, UnitID: unitID, CheckIn: checkIn, Checkout: checkout}
}

func TestValidateBookingDates(t *testing.T) {
	good := booking("b1", "unit-1", "2025-01-01", "2025-02-01")
	assert.NoError(t, rental.ValidateBookingDates(&good))

	inverted := booking("b1", "unit-1", "2025-02-01", "2025-01-01")
	assert.ErrorIs(t, rental.ValidateBookingDates(&inverted), rental.ErrInvalidDates)

	garbage := booking("b1", "unit-1", "soon", "2025-01-01")
	assert.ErrorIs(t, rental.ValidateBookingDates(&garbage), rental.ErrInvalidDates)

	zeroLength := booking("b1", "unit-1", "2025-01-01", "2025-01-01")
	assert.NoError(t, rental.ValidateBookingDates(&zeroLength), "zero-length stay is storable")
}

func TestCheckOverlap_ConflictIdentified(t *testing.T) {
	candidate := booking("b-new", "unit-1", "2025-01-10", "2025-01-20")
	existing := []rental.Booking{
		booking("b-old", "unit-1", "2025-01-15", "2025-01-25"),
		booking("b-other-unit", "unit-2", "2025-01-15", "2025-01-25"),
	}

	err := rental.CheckOverlap(&candidate, existing)
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrOverlap)

	var overlapErr *rental.OverlapError
	require.True(t, errors.As(err, &overlapErr))
	assert.Equal(t, "b-old", overlapErr.ConflictID)
	assert.Equal(t, "unit-1", overlapErr.UnitID)
}

func TestCheckOverlap_BackToBackAllowed(t *testing.T) {
	candidate := booking("b-new", "unit-1", "2025-01-01", "2025-01-15")
	existing := []rental.Booking{booking("b-old", "unit-1", "2025-01-15", "2025-01-25")}

	assert.NoError(t, rental.CheckOverlap(&candidate, existing))
}

func TestCheckOverlap_EditingOwnBooking(t *testing.T) {
	// Shifting an existing booking's dates must not collide with itself.
	candidate := booking("b1", "unit-1", "2025-01-12", "2025-01-22")
	existing := []rental.Booking{booking("b1", "unit-1", "2025-01-10", "2025-01-20")}

	assert.NoError(t, rental.CheckOverlap(&candidate, existing))
}

func TestCheckOverlap_OtherUnitsIgnored(t *testing.T) {
	candidate := booking("b-new", "unit-1", "2025-01-10", "2025-01-20")
	existing := []rental.Booking{booking("b2", "unit-2", "2025-01-10", "2025-01-20")}

	assert.NoError(t, rental.CheckOverlap(&candidate, existing))
}
