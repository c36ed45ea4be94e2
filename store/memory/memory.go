// Package memory provides an in-memory rental.Store for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/harborview/rental-engine/rental"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	properties map[string]rental.Property
	units      map[string]rental.Unit
	bookings   map[string]rental.Booking
	expenses   map[string]rental.Expense
	reminders  map[string]rental.Reminder
}

func New() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.properties = make(map[string]rental.Property)
	m.units = make(map[string]rental.Unit)
	m.bookings = make(map[string]rental.Booking)
	m.expenses = make(map[string]rental.Expense)
	m.reminders = make(map[string]rental.Reminder)
}

// -----------------------------------------------------------------------------
// Properties
// -----------------------------------------------------------------------------

func (m *Memory) ListProperties(_ context.Context) ([]rental.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]rental.Property, 0, len(m.properties))
	for _, p := range m.properties {
		out = append(out, p)
	}
	sortByID(out, func(p rental.Property) string { return p.ID })
	return out, nil
}

func (m *Memory) SaveProperty(_ context.Context, p rental.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[p.ID] = p
	return nil
}

// DeleteProperty cascades to the property's units, their bookings, and the
// property's expenses.
func (m *Memory) DeleteProperty(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.properties[id]; !ok {
		return rental.ErrNotFound
	}
	delete(m.properties, id)

	for unitID, u := range m.units {
		if u.PropertyID == id {
			m.deleteUnitLocked(unitID)
		}
	}
	for expID, e := range m.expenses {
		if e.PropertyID == id {
			delete(m.expenses, expID)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Units
// -----------------------------------------------------------------------------

func (m *Memory) ListUnits(_ context.Context) ([]rental.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]rental.Unit, 0, len(m.units))
	for _, u := range m.units {
		out = append(out, u)
	}
	sortByID(out, func(u rental.Unit) string { return u.ID })
	return out, nil
}

func (m *Memory) GetUnit(_ context.Context, id string) (*rental.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.units[id]
	if !ok {
		return nil, rental.ErrNotFound
	}
	return &u, nil
}

func (m *Memory) SaveUnit(_ context.Context, u rental.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.properties[u.PropertyID]; !ok {
		return rental.ErrUnknownParent
	}
	m.units[u.ID] = u
	return nil
}

// DeleteUnit cascades to the unit's bookings and expenses.
func (m *Memory) DeleteUnit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.units[id]; !ok {
		return rental.ErrNotFound
	}
	m.deleteUnitLocked(id)
	return nil
}

func (m *Memory) deleteUnitLocked(id string) {
	delete(m.units, id)
	for bookingID, b := range m.bookings {
		if b.UnitID == id {
			delete(m.bookings, bookingID)
		}
	}
	for expID, e := range m.expenses {
		if e.UnitID == id {
			delete(m.expenses, expID)
		}
	}
}

// -----------------------------------------------------------------------------
// Bookings
// -----------------------------------------------------------------------------

func (m *Memory) ListBookings(_ context.Context) ([]rental.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]rental.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, copyBooking(b))
	}
	sortByID(out, func(b rental.Booking) string { return b.ID })
	return out, nil
}

func (m *Memory) ListBookingsByUnit(_ context.Context, unitID string) ([]rental.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []rental.Booking
	for _, b := range m.bookings {
		if b.UnitID == unitID {
			out = append(out, copyBooking(b))
		}
	}
	sortByID(out, func(b rental.Booking) string { return b.ID })
	return out, nil
}

func (m *Memory) GetBooking(_ context.Context, id string) (*rental.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, rental.ErrNotFound
	}
	cp := copyBooking(b)
	return &cp, nil
}

func (m *Memory) SaveBooking(_ context.Context, b rental.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.units[b.UnitID]; !ok {
		return rental.ErrUnknownParent
	}
	m.bookings[b.ID] = copyBooking(b)
	return nil
}

func (m *Memory) DeleteBooking(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookings[id]; !ok {
		return rental.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

// -----------------------------------------------------------------------------
// Expenses
// -----------------------------------------------------------------------------

func (m *Memory) ListExpenses(_ context.Context) ([]rental.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]rental.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		out = append(out, e)
	}
	sortByID(out, func(e rental.Expense) string { return e.ID })
	return out, nil
}

func (m *Memory) SaveExpense(_ context.Context, e rental.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkExpenseParentsLocked(e); err != nil {
		return err
	}
	m.expenses[e.ID] = e
	return nil
}

func (m *Memory) checkExpenseParentsLocked(e rental.Expense) error {
	if e.PropertyID != "" {
		if _, ok := m.properties[e.PropertyID]; !ok {
			return rental.ErrUnknownParent
		}
	}
	if e.UnitID != "" {
		if _, ok := m.units[e.UnitID]; !ok {
			return rental.ErrUnknownParent
		}
	}
	return nil
}

func (m *Memory) DeleteExpense(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.expenses[id]; !ok {
		return rental.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

// -----------------------------------------------------------------------------
// Reminders (manual overlay only; generated reminders are never stored)
// -----------------------------------------------------------------------------

func (m *Memory) ListReminders(_ context.Context) ([]rental.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]rental.Reminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		out = append(out, r)
	}
	sortByID(out, func(r rental.Reminder) string { return r.ID })
	return out, nil
}

func (m *Memory) SaveReminder(_ context.Context, r rental.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[r.ID] = r
	return nil
}

func (m *Memory) DeleteReminder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reminders[id]; !ok {
		return rental.ErrNotFound
	}
	delete(m.reminders, id)
	return nil
}

// -----------------------------------------------------------------------------
// Bulk export / import
// -----------------------------------------------------------------------------

func (m *Memory) Export(ctx context.Context) (*rental.Dataset, error) {
	properties, _ := m.ListProperties(ctx)
	units, _ := m.ListUnits(ctx)
	bookings, _ := m.ListBookings(ctx)
	expenses, _ := m.ListExpenses(ctx)
	return &rental.Dataset{
		Properties: properties,
		Units:      units,
		Bookings:   bookings,
		Expenses:   expenses,
	}, nil
}

// Import replaces all collections atomically: a dataset with dangling
// parent references is rejected whole. Manual reminders are untouched.
func (m *Memory) Import(_ context.Context, data *rental.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	properties := make(map[string]rental.Property, len(data.Properties))
	units := make(map[string]rental.Unit, len(data.Units))
	bookings := make(map[string]rental.Booking, len(data.Bookings))
	expenses := make(map[string]rental.Expense, len(data.Expenses))

	for _, p := range data.Properties {
		properties[p.ID] = p
	}
	for _, u := range data.Units {
		if _, ok := properties[u.PropertyID]; !ok {
			return rental.ErrUnknownParent
		}
		units[u.ID] = u
	}
	for _, b := range data.Bookings {
		if _, ok := units[b.UnitID]; !ok {
			return rental.ErrUnknownParent
		}
		bookings[b.ID] = copyBooking(b)
	}
	for _, e := range data.Expenses {
		if e.PropertyID != "" {
			if _, ok := properties[e.PropertyID]; !ok {
				return rental.ErrUnknownParent
			}
		}
		if e.UnitID != "" {
			if _, ok := units[e.UnitID]; !ok {
				return rental.ErrUnknownParent
			}
		}
		expenses[e.ID] = e
	}

	m.properties = properties
	m.units = units
	m.bookings = bookings
	m.expenses = expenses
	return nil
}

// copyBooking deep-copies the payment and meter reading slices so callers
// can mutate returned bookings freely.
func copyBooking(b rental.Booking) rental.Booking {
	cp := b
	cp.Payments = append([]rental.Payment(nil), b.Payments...)
	cp.MeterReadings = append([]rental.MeterReading(nil), b.MeterReadings...)
	return cp
}

func sortByID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
