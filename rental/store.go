/*
store.go - Persistence interface for portfolio entities

The computation core never touches storage; this interface is the boundary
handlers and reports read through. Implementations:
  - store/sqlite: production SQLite store
  - store/memory: in-memory store for tests

CASCADE RULES (matching how managers actually delete things):
  - Deleting a property removes its units, those units' bookings, and the
    property's expenses.
  - Deleting a unit removes its bookings and expenses.
Bookings and expenses delete individually with no dependents.
*/
package rental

import "context"

// Dataset is the whole portfolio as one document, used by bulk
// export/import. Import replaces all collections.
type Dataset struct {
	Properties []Property `json:"properties"`
	Units      []Unit     `json:"units"`
	Bookings   []Booking  `json:"bookings"`
	Expenses   []Expense  `json:"expenses"`
}

// Store persists portfolio entities. Reads return copies; mutating a
// returned value never changes stored state.
type Store interface {
	ListProperties(ctx context.Context) ([]Property, error)
	SaveProperty(ctx context.Context, p Property) error
	// DeleteProperty cascades to units, their bookings, and expenses.
	DeleteProperty(ctx context.Context, id string) error

	ListUnits(ctx context.Context) ([]Unit, error)
	GetUnit(ctx context.Context, id string) (*Unit, error)
	SaveUnit(ctx context.Context, u Unit) error
	// DeleteUnit cascades to the unit's bookings and expenses.
	DeleteUnit(ctx context.Context, id string) error

	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsByUnit(ctx context.Context, unitID string) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	SaveBooking(ctx context.Context, b Booking) error
	DeleteBooking(ctx context.Context, id string) error

	ListExpenses(ctx context.Context) ([]Expense, error)
	SaveExpense(ctx context.Context, e Expense) error
	DeleteExpense(ctx context.Context, id string) error

	ListReminders(ctx context.Context) ([]Reminder, error)
	SaveReminder(ctx context.Context, r Reminder) error
	DeleteReminder(ctx context.Context, id string) error

	// Export reads the whole dataset; Import replaces it atomically.
	Export(ctx context.Context) (*Dataset, error)
	Import(ctx context.Context, data *Dataset) error
}
