package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/rental-engine/rental"
	"github.com/harborview/rental-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedPortfolio(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, rental.Property{ID: "prop-1", Name: "Lily House"}))
	require.NoError(t, store.SaveProperty(ctx, rental.Property{ID: "prop-2", Name: "Bura Paradise"}))
	require.NoError(t, store.SaveUnit(ctx, rental.Unit{ID: "unit-1", PropertyID: "prop-1", Name: "Lily1", MonthlyRate: 9000}))
	require.NoError(t, store.SaveUnit(ctx, rental.Unit{ID: "unit-2", PropertyID: "prop-2", Name: "Bura1", MonthlyRate: 3000}))
	require.NoError(t, store.SaveBooking(ctx, rental.Booking{
		ID: "book-1", UnitID: "unit-1",
		FirstName: "Ann", LastName: "Berg",
		CheckIn: "2025-01-01", Checkout: "2025-03-01",
		Payments: []rental.Payment{{Date: "2025-01-01", Amount: 9000, Category: "Rent"}},
	}))
	require.NoError(t, store.SaveExpense(ctx, rental.Expense{ID: "exp-1", UnitID: "unit-1", Amount: 1200, Category: "Repairs"}))
	require.NoError(t, store.SaveExpense(ctx, rental.Expense{ID: "exp-2", PropertyID: "prop-1", Amount: 300, Category: "Garden"}))
}

func TestStore_BookingRoundTrip(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	// WHEN reading the booking back
	got, err := store.GetBooking(ctx, "book-1")
	require.NoError(t, err)

	// THEN the nested collections survive the round trip
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "2025-01-01", got.CheckIn)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, 9000.0, got.Payments[0].Amount)
}

func TestStore_SaveIsUpsert(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	b, err := store.GetBooking(ctx, "book-1")
	require.NoError(t, err)
	b.Checkout = "2025-04-01"
	require.NoError(t, store.SaveBooking(ctx, *b))

	got, err := store.GetBooking(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", got.Checkout)

	bookings, err := store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1, "upsert, not duplicate")
}

func TestStore_DeletePropertyCascades(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	// WHEN deleting the property that owns unit-1
	require.NoError(t, store.DeleteProperty(ctx, "prop-1"))

	// THEN the unit, its booking, and both expenses are gone
	_, err := store.GetUnit(ctx, "unit-1")
	assert.ErrorIs(t, err, rental.ErrNotFound)
	_, err = store.GetBooking(ctx, "book-1")
	assert.ErrorIs(t, err, rental.ErrNotFound)

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	// AND the other property is untouched
	units, err := store.ListUnits(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "unit-2", units[0].ID)
}

func TestStore_DeleteUnitCascades(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	require.NoError(t, store.DeleteUnit(ctx, "unit-1"))

	_, err := store.GetBooking(ctx, "book-1")
	assert.ErrorIs(t, err, rental.ErrNotFound)

	// Property-level expense survives; unit-level one does not.
	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "exp-2", expenses[0].ID)
}

func TestStore_SaveRejectsUnknownParent(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	// GIVEN saves that dangle off parents the store has never seen
	err := store.SaveUnit(ctx, rental.Unit{ID: "unit-9", PropertyID: "prop-9", Name: "Nine"})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	err = store.SaveBooking(ctx, rental.Booking{ID: "book-9", UnitID: "unit-9", CheckIn: "2025-01-01", Checkout: "2025-02-01"})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	err = store.SaveExpense(ctx, rental.Expense{ID: "exp-9", UnitID: "unit-9", Amount: 50, Category: "Repairs"})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	// AND nothing was written
	units, err := store.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestStore_ImportRejectsUnknownParent(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	data := &rental.Dataset{
		Properties: []rental.Property{{ID: "prop-9", Name: "New Place"}},
		Units:      []rental.Unit{{ID: "unit-9", PropertyID: "prop-gone", Name: "Nine"}},
	}
	assert.ErrorIs(t, store.Import(ctx, data), rental.ErrUnknownParent)

	// The transaction rolled back, so the old dataset is intact.
	properties, err := store.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}

func TestStore_DeleteMissingReturnsNotFound(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.DeleteBooking(ctx, "nope"), rental.ErrNotFound)
	assert.ErrorIs(t, store.DeleteProperty(ctx, "nope"), rental.ErrNotFound)
	assert.ErrorIs(t, store.DeleteReminder(ctx, "nope"), rental.ErrNotFound)
}

func TestStore_ListBookingsByUnit(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	require.NoError(t, store.SaveBooking(ctx, rental.Booking{ID: "book-2", UnitID: "unit-2", CheckIn: "2025-02-01", Checkout: "2025-03-01"}))

	got, err := store.ListBookingsByUnit(ctx, "unit-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "book-1", got[0].ID)
}

func TestStore_ImportReplacesEverything(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	// Manual reminders live outside the dataset and must survive import.
	require.NoError(t, store.SaveReminder(ctx, rental.Reminder{ID: "rem-1", Date: "2025-05-01", Type: "other", Text: "Renew insurance"}))

	data := &rental.Dataset{
		Properties: []rental.Property{{ID: "prop-9", Name: "New Place"}},
		Units:      []rental.Unit{{ID: "unit-9", PropertyID: "prop-9", Name: "Nine"}},
		Bookings: []rental.Booking{{
			ID: "book-9", UnitID: "unit-9", CheckIn: "2025-06-01", Checkout: "2025-07-01",
		}},
	}
	require.NoError(t, store.Import(ctx, data))

	properties, err := store.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "prop-9", properties[0].ID)

	bookings, err := store.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "book-9", bookings[0].ID)

	reminders, err := store.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "rem-1", reminders[0].ID)
}

func TestStore_ExportRoundTrip(t *testing.T) {
	store := newStore(t)
	seedPortfolio(t, store)
	ctx := context.Background()

	data, err := store.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Properties, 2)
	assert.Len(t, data.Units, 2)
	assert.Len(t, data.Bookings, 1)
	assert.Len(t, data.Expenses, 2)

	// Importing an export must be a no-op on content.
	fresh := newStore(t)
	require.NoError(t, fresh.Import(ctx, data))
	again, err := fresh.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}
