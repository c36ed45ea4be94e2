/*
handlers.go - HTTP API handlers for the rental billing engine

PURPOSE:
  Exposes the portfolio and its derived billing figures via REST. Handles
  HTTP request/response, JSON serialization, and delegates computation to
  the rental and billing packages.

ENDPOINTS:
  CRUD:
    GET/POST   /api/properties         PUT/DELETE /api/properties/{id}
    GET/POST   /api/units              PUT/DELETE /api/units/{id}
    GET/POST   /api/bookings           GET/PUT/DELETE /api/bookings/{id}
    GET/POST   /api/expenses           PUT/DELETE /api/expenses/{id}

  Computation:
    GET    /api/bookings/{id}/financials  Full money picture of one stay
    GET    /api/bookings/view             Filterable, sortable table rows
    GET    /api/reminders                 Generated reminders + manual overlay
    POST   /api/reminders                 Add a manual reminder
    DELETE /api/reminders/{id}            Remove a manual reminder
    GET    /api/report                    Portfolio income/expense report

  Data management:
    GET  /api/data/export                 Whole dataset as one document
    POST /api/data/import                 Replace-all import
    POST /api/data/initialize             Seed sample data (empty DB only)
    GET  /api/health                      Liveness check

THE "asOf" PARAMETER:
  Every computed endpoint accepts ?asOf=YYYY-MM-DD. All derived figures in
  one response are computed from that single day (default: today), so the
  numbers in a response cannot disagree with each other.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, malformed dates
  - 404: Resource not found
  - 409: Booking overlap conflict
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
  - rental/financials.go: The computation this layer exposes
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/harborview/rental-engine/billing"
	"github.com/harborview/rental-engine/rental"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  rental.Store
	Logger *zap.Logger

	// now supplies "today" for computed endpoints; tests override it.
	now func() billing.Date
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store rental.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Logger: logger, now: billing.Today}
}

// asOf resolves the computation day: ?asOf=YYYY-MM-DD or today.
func (h *Handler) asOf(r *http.Request) (billing.Date, error) {
	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return h.now(), nil
	}
	return billing.ParseDate(raw)
}

// =============================================================================
// PROPERTY HANDLERS
// =============================================================================

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Store.ListProperties(r.Context())
	if err != nil {
		h.internal(w, "Failed to list properties", err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var p rental.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if p.ID == "" {
		p.ID = rental.NewPropertyID()
	}
	if err := h.Store.SaveProperty(r.Context(), p); err != nil {
		h.internal(w, "Failed to create property", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var p rental.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := h.Store.SaveProperty(r.Context(), p); err != nil {
		h.internal(w, "Failed to update property", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "property", h.Store.DeleteProperty)
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Store.ListUnits(r.Context())
	if err != nil {
		h.internal(w, "Failed to list units", err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var u rental.Unit
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	u.ApplyDefaults()
	if err := h.Store.SaveUnit(r.Context(), u); err != nil {
		h.saveErr(w, "Failed to create unit", err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	var u rental.Unit
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	u.ID = chi.URLParam(r, "id")
	u.ApplyDefaults()
	if err := h.Store.SaveUnit(r.Context(), u); err != nil {
		h.saveErr(w, "Failed to update unit", err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "unit", h.Store.DeleteUnit)
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Store.ListBookings(r.Context())
	if err != nil {
		h.internal(w, "Failed to list bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, rental.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Booking not found", nil)
		return
	}
	if err != nil {
		h.internal(w, "Failed to get booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var b rental.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	b.ApplyDefaults()
	if h.rejectBooking(w, r, &b) {
		return
	}
	if err := h.Store.SaveBooking(r.Context(), b); err != nil {
		h.saveErr(w, "Failed to create booking", err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var b rental.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	b.ID = chi.URLParam(r, "id")
	b.ApplyDefaults()
	if h.rejectBooking(w, r, &b) {
		return
	}
	if err := h.Store.SaveBooking(r.Context(), b); err != nil {
		h.saveErr(w, "Failed to update booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// rejectBooking runs date and overlap validation, writing the error
// response itself. Returns true when the booking must not be saved.
func (h *Handler) rejectBooking(w http.ResponseWriter, r *http.Request, b *rental.Booking) bool {
	if err := rental.ValidateBookingDates(b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid booking dates", err)
		return true
	}
	existing, err := h.Store.ListBookingsByUnit(r.Context(), b.UnitID)
	if err != nil {
		h.internal(w, "Failed to check overlaps", err)
		return true
	}
	if err := rental.CheckOverlap(b, existing); err != nil {
		writeError(w, http.StatusConflict, "Booking overlaps an existing stay", err)
		return true
	}
	return false
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "booking", h.Store.DeleteBooking)
}

// GetFinancials returns the full derived money picture of one booking.
func (h *Handler) GetFinancials(w http.ResponseWriter, r *http.Request) {
	today, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asOf date (use YYYY-MM-DD)", err)
		return
	}
	b, err := h.Store.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, rental.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Booking not found", nil)
		return
	}
	if err != nil {
		h.internal(w, "Failed to get booking", err)
		return
	}
	writeJSON(w, http.StatusOK, toFinancialsDTO(rental.ComputeFinancials(b, today)))
}

// GetBookingView returns table rows, filtered and sorted per query params.
func (h *Handler) GetBookingView(w http.ResponseWriter, r *http.Request) {
	today, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asOf date (use YYYY-MM-DD)", err)
		return
	}
	bookings, err := h.Store.ListBookings(r.Context())
	if err != nil {
		h.internal(w, "Failed to list bookings", err)
		return
	}
	units, err := h.Store.ListUnits(r.Context())
	if err != nil {
		h.internal(w, "Failed to list units", err)
		return
	}

	q := r.URL.Query()
	filter := billing.Filter{
		UnitID:        q.Get("unitId"),
		GuestQuery:    q.Get("guest"),
		CheckInMonth:  q.Get("checkInMonth"),
		CheckoutMonth: q.Get("checkoutMonth"),
		OwedStatus:    billing.OwedStatus(q.Get("owed")),
	}
	descending, _ := strconv.ParseBool(q.Get("desc"))

	rows := rental.BuildRows(bookings, units, today)
	rows = billing.Query(rows, filter, billing.SortKey(q.Get("sort")), descending)
	writeJSON(w, http.StatusOK, toRowDTOs(rows))
}

// =============================================================================
// EXPENSE HANDLERS
// =============================================================================

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Store.ListExpenses(r.Context())
	if err != nil {
		h.internal(w, "Failed to list expenses", err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var e rental.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if e.ID == "" {
		e.ID = rental.NewExpenseID()
	}
	if err := h.Store.SaveExpense(r.Context(), e); err != nil {
		h.saveErr(w, "Failed to create expense", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var e rental.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	e.ID = chi.URLParam(r, "id")
	if err := h.Store.SaveExpense(r.Context(), e); err != nil {
		h.saveErr(w, "Failed to update expense", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "expense", h.Store.DeleteExpense)
}

// =============================================================================
// REMINDER HANDLERS
// =============================================================================

// ListReminders returns generated reminders plus the manual overlay.
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	today, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asOf date (use YYYY-MM-DD)", err)
		return
	}
	units, err := h.Store.ListUnits(r.Context())
	if err != nil {
		h.internal(w, "Failed to list units", err)
		return
	}
	bookings, err := h.Store.ListBookings(r.Context())
	if err != nil {
		h.internal(w, "Failed to list bookings", err)
		return
	}
	manual, err := h.Store.ListReminders(r.Context())
	if err != nil {
		h.internal(w, "Failed to list reminders", err)
		return
	}
	reminders := rental.GenerateReminders(units, bookings, manual, today)
	writeJSON(w, http.StatusOK, toReminderDTOs(reminders))
}

func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var rem rental.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if rem.ID == "" {
		rem.ID = rental.NewReminderID()
	}
	if rem.Type == "" {
		rem.Type = string(billing.ReminderOther)
	}
	if err := h.Store.SaveReminder(r.Context(), rem); err != nil {
		h.internal(w, "Failed to create reminder", err)
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "reminder", h.Store.DeleteReminder)
}

// =============================================================================
// REPORT HANDLER
// =============================================================================

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	properties, err := h.Store.ListProperties(ctx)
	if err != nil {
		h.internal(w, "Failed to list properties", err)
		return
	}
	units, err := h.Store.ListUnits(ctx)
	if err != nil {
		h.internal(w, "Failed to list units", err)
		return
	}
	bookings, err := h.Store.ListBookings(ctx)
	if err != nil {
		h.internal(w, "Failed to list bookings", err)
		return
	}
	expenses, err := h.Store.ListExpenses(ctx)
	if err != nil {
		h.internal(w, "Failed to list expenses", err)
		return
	}
	report := rental.BuildReport(properties, units, bookings, expenses)
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// =============================================================================
// DATA MANAGEMENT HANDLERS
// =============================================================================

func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	data, err := h.Store.Export(r.Context())
	if err != nil {
		h.internal(w, "Failed to export data", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// ImportData replaces the whole portfolio with the posted dataset.
func (h *Handler) ImportData(w http.ResponseWriter, r *http.Request) {
	var data rental.Dataset
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Store.Import(r.Context(), &data); err != nil {
		h.saveErr(w, "Failed to import data", err)
		return
	}
	h.Logger.Info("dataset imported",
		zap.Int("properties", len(data.Properties)),
		zap.Int("units", len(data.Units)),
		zap.Int("bookings", len(data.Bookings)),
		zap.Int("expenses", len(data.Expenses)))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Data imported successfully"})
}

func (h *Handler) InitializeData(w http.ResponseWriter, r *http.Request) {
	ran, err := rental.SeedSampleData(r.Context(), h.Store)
	if err != nil {
		h.internal(w, "Failed to initialize sample data", err)
		return
	}
	if !ran {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Data already exists"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sample data initialized successfully"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) deleteEntity(w http.ResponseWriter, r *http.Request, kind string, del func(ctx context.Context, id string) error) {
	id := chi.URLParam(r, "id")
	err := del(r.Context(), id)
	if errors.Is(err, rental.ErrNotFound) {
		writeError(w, http.StatusNotFound, kind+" not found", nil)
		return
	}
	if err != nil {
		h.internal(w, "Failed to delete "+kind, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": kind + " deleted"})
}

// saveErr maps save failures: a dangling parent reference is the client's
// mistake, everything else is ours.
func (h *Handler) saveErr(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, rental.ErrUnknownParent) {
		writeError(w, http.StatusBadRequest, "Referenced property or unit does not exist", err)
		return
	}
	h.internal(w, message, err)
}

func (h *Handler) internal(w http.ResponseWriter, message string, err error) {
	h.Logger.Error(message, zap.Error(err))
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
