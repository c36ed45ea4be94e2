/*
errors.go - Domain error types

Computation never errors (it fails closed); these errors belong to the
edges: persistence lookups and pre-save validation. Handlers map them to
HTTP statuses with errors.Is / errors.As.
*/
package rental

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity doesn't exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidDates is returned when a booking's dates are missing,
	// unparsable, or inverted. Surfaced at save time; reads tolerate bad
	// dates by failing closed instead.
	ErrInvalidDates = errors.New("invalid check-in/checkout dates")

	// ErrOverlap is returned when a stay would double-book a unit.
	ErrOverlap = errors.New("booking overlaps an existing stay")

	// ErrUnknownParent is returned when a saved entity references a
	// property or unit that does not exist.
	ErrUnknownParent = errors.New("referenced parent entity does not exist")
)

// OverlapError carries which existing booking blocks the candidate.
type OverlapError struct {
	UnitID     string
	BookingID  string // the candidate
	ConflictID string // the existing stay it collides with
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("unit %s: booking conflicts with existing stay %s", e.UnitID, e.ConflictID)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }
