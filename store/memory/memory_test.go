package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/rental-engine/rental"
	"github.com/harborview/rental-engine/store/memory"
)

func TestMemory_CascadeAndCopySemantics(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, rental.Property{ID: "prop-1", Name: "Lily House"}))
	require.NoError(t, store.SaveUnit(ctx, rental.Unit{ID: "unit-1", PropertyID: "prop-1", Name: "Lily1"}))
	require.NoError(t, store.SaveBooking(ctx, rental.Booking{
		ID: "book-1", UnitID: "unit-1",
		Payments: []rental.Payment{{Date: "2025-01-01", Amount: 9000, Category: "Rent"}},
	}))
	require.NoError(t, store.SaveExpense(ctx, rental.Expense{ID: "exp-1", UnitID: "unit-1", Amount: 100}))

	// Mutating a read copy must not change stored state.
	got, err := store.GetBooking(ctx, "book-1")
	require.NoError(t, err)
	got.Payments[0].Amount = 1

	fresh, err := store.GetBooking(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 9000.0, fresh.Payments[0].Amount)

	// Property delete takes the unit, booking, and expense with it.
	require.NoError(t, store.DeleteProperty(ctx, "prop-1"))
	_, err = store.GetUnit(ctx, "unit-1")
	assert.ErrorIs(t, err, rental.ErrNotFound)
	_, err = store.GetBooking(ctx, "book-1")
	assert.ErrorIs(t, err, rental.ErrNotFound)
	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestMemory_SaveRejectsUnknownParent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, rental.Property{ID: "prop-1"}))

	err := store.SaveUnit(ctx, rental.Unit{ID: "unit-1", PropertyID: "prop-gone"})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	err = store.SaveBooking(ctx, rental.Booking{ID: "book-1", UnitID: "unit-gone"})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	err = store.SaveExpense(ctx, rental.Expense{ID: "exp-1", UnitID: "unit-gone", Amount: 50})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	// Property-level expenses are checked too.
	err = store.SaveExpense(ctx, rental.Expense{ID: "exp-2", PropertyID: "prop-gone", Amount: 50})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)
}

func TestMemory_ImportRejectsUnknownParent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, rental.Property{ID: "prop-old"}))

	err := store.Import(ctx, &rental.Dataset{
		Properties: []rental.Property{{ID: "prop-new"}},
		Units:      []rental.Unit{{ID: "unit-1", PropertyID: "prop-gone"}},
	})
	assert.ErrorIs(t, err, rental.ErrUnknownParent)

	// A rejected import leaves the previous dataset in place.
	properties, err := store.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "prop-old", properties[0].ID)
}

func TestMemory_ImportKeepsReminders(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, rental.Property{ID: "prop-old"}))
	require.NoError(t, store.SaveReminder(ctx, rental.Reminder{ID: "rem-1", Date: "2025-05-01", Type: "other"}))

	require.NoError(t, store.Import(ctx, &rental.Dataset{
		Properties: []rental.Property{{ID: "prop-new"}},
	}))

	properties, err := store.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "prop-new", properties[0].ID)

	reminders, err := store.ListReminders(ctx)
	require.NoError(t, err)
	assert.Len(t, reminders, 1)
}
