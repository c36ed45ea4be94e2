/*
Package sqlite provides a SQLite-backed implementation of rental.Store.

PURPOSE:
  Persists the portfolio (properties, units, bookings, expenses, manual
  reminders) in a single SQLite file. Entities are stored as JSON documents
  alongside the relational columns the store actually queries on: ids and
  the foreign keys that drive cascades.

CASCADES:
  Enforced by the database, not application code:
  - properties -> units -> bookings (ON DELETE CASCADE)
  - properties/units -> expenses (ON DELETE CASCADE)
  Foreign keys are switched on in the DSN; without that SQLite silently
  ignores them.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/rental.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

Use ":memory:" as the path for tests.

SEE ALSO:
  - rental/store.go: interface definition and cascade contract
  - store/memory: in-memory implementation for unit tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/harborview/rental-engine/rental"
)

// Store implements rental.Store on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		doc_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		doc_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_units_property
		ON units(property_id);

	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL REFERENCES units(id) ON DELETE CASCADE,
		check_in TEXT,
		checkout TEXT,
		doc_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_unit
		ON bookings(unit_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_dates
		ON bookings(unit_id, check_in, checkout);

	-- An expense belongs to either a unit or a property; both cascade.
	CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		property_id TEXT REFERENCES properties(id) ON DELETE CASCADE,
		unit_id TEXT REFERENCES units(id) ON DELETE CASCADE,
		doc_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_expenses_unit
		ON expenses(unit_id) WHERE unit_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_expenses_property
		ON expenses(property_id) WHERE property_id IS NOT NULL;

	-- Manual reminders only; generated reminders are derived, never stored.
	CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		doc_json TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROPERTIES
// =============================================================================

func (s *Store) ListProperties(ctx context.Context) ([]rental.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[rental.Property](ctx, s.db, "SELECT doc_json FROM properties ORDER BY id")
}

func (s *Store) SaveProperty(ctx context.Context, p rental.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO properties (id, doc_json) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET doc_json = excluded.doc_json
	`, p.ID, string(doc))
	return err
}

func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "properties", id)
}

// =============================================================================
// UNITS
// =============================================================================

func (s *Store) ListUnits(ctx context.Context) ([]rental.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[rental.Unit](ctx, s.db, "SELECT doc_json FROM units ORDER BY id")
}

func (s *Store) GetUnit(ctx context.Context, id string) (*rental.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getDoc[rental.Unit](ctx, s.db, "SELECT doc_json FROM units WHERE id = ?", id)
}

func (s *Store) SaveUnit(ctx context.Context, u rental.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(u)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO units (id, property_id, doc_json) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			property_id = excluded.property_id,
			doc_json = excluded.doc_json
	`, u.ID, u.PropertyID, string(doc))
	return parentErr(err)
}

func (s *Store) DeleteUnit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "units", id)
}

// =============================================================================
// BOOKINGS
// =============================================================================

func (s *Store) ListBookings(ctx context.Context) ([]rental.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[rental.Booking](ctx, s.db, "SELECT doc_json FROM bookings ORDER BY id")
}

func (s *Store) ListBookingsByUnit(ctx context.Context, unitID string) ([]rental.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[rental.Booking](ctx, s.db,
		"SELECT doc_json FROM bookings WHERE unit_id = ? ORDER BY id", unitID)
}

func (s *Store) GetBooking(ctx context.Context, id string) (*rental.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getDoc[rental.Booking](ctx, s.db, "SELECT doc_json FROM bookings WHERE id = ?", id)
}

func (s *Store) SaveBooking(ctx context.Context, b rental.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveBookingTx(ctx, s.db, b)
}

func saveBookingTx(ctx context.Context, db execer, b rental.Booking) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO bookings (id, unit_id, check_in, checkout, doc_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			unit_id = excluded.unit_id,
			check_in = excluded.check_in,
			checkout = excluded.checkout,
			doc_json = excluded.doc_json
	`, b.ID, b.UnitID, b.CheckIn, b.Checkout, string(doc))
	return parentErr(err)
}

func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "bookings", id)
}

// =============================================================================
// EXPENSES
// =============================================================================

func (s *Store) ListExpenses(ctx context.Context) ([]rental.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[rental.Expense](ctx, s.db, "SELECT doc_json FROM expenses ORDER BY id")
}

func (s *Store) SaveExpense(ctx context.Context, e rental.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveExpenseTx(ctx, s.db, e)
}

func saveExpenseTx(ctx context.Context, db execer, e rental.Expense) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO expenses (id, property_id, unit_id, doc_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			property_id = excluded.property_id,
			unit_id = excluded.unit_id,
			doc_json = excluded.doc_json
	`, e.ID, nullString(e.PropertyID), nullString(e.UnitID), string(doc))
	return parentErr(err)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "expenses", id)
}

// =============================================================================
// REMINDERS
// =============================================================================

func (s *Store) ListReminders(ctx context.Context) ([]rental.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDocs[rental.Reminder](ctx, s.db, "SELECT doc_json FROM reminders ORDER BY id")
}

func (s *Store) SaveReminder(ctx context.Context, r rental.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, doc_json) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET doc_json = excluded.doc_json
	`, r.ID, string(doc))
	return err
}

func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "reminders", id)
}

// =============================================================================
// BULK EXPORT / IMPORT
// =============================================================================

func (s *Store) Export(ctx context.Context) (*rental.Dataset, error) {
	properties, err := s.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return &rental.Dataset{
		Properties: properties,
		Units:      units,
		Bookings:   bookings,
		Expenses:   expenses,
	}, nil
}

// Import replaces the whole portfolio in one transaction. Manual reminders
// are untouched.
func (s *Store) Import(ctx context.Context, data *rental.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first so foreign keys never see a dangling parent.
	for _, table := range []string{"expenses", "bookings", "units", "properties"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, p := range data.Properties {
		doc, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO properties (id, doc_json) VALUES (?, ?)", p.ID, string(doc)); err != nil {
			return err
		}
	}
	for _, u := range data.Units {
		doc, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO units (id, property_id, doc_json) VALUES (?, ?, ?)",
			u.ID, u.PropertyID, string(doc)); err != nil {
			return parentErr(err)
		}
	}
	for _, b := range data.Bookings {
		if err := saveBookingTx(ctx, tx, b); err != nil {
			return err
		}
	}
	for _, e := range data.Expenses {
		if err := saveExpenseTx(ctx, tx, e); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// =============================================================================
// HELPERS
// =============================================================================

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return rental.ErrNotFound
	}
	return nil
}

func listDocs[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return nil, fmt.Errorf("corrupt document: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func getDoc[T any](ctx context.Context, db *sql.DB, query string, args ...any) (*T, error) {
	var doc string
	err := db.QueryRowContext(ctx, query, args...).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, rental.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return nil, fmt.Errorf("corrupt document: %w", err)
	}
	return &v, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// parentErr translates a foreign-key violation into the domain sentinel so
// handlers can answer with a client error instead of a 500.
func parentErr(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return rental.ErrUnknownParent
	}
	return err
}
