package appointments

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/supporta-app/supporta/internal/alerts"
	"github.com/supporta-app/supporta/internal/db"
)

// fetchServiceWindow loads the schedule parameters for a service
func fetchServiceWindow(ctx context.Context, serviceID string) (start, end string, interval int, ownerID string, err error) {
	err = db.Conn.QueryRow(ctx,
		`SELECT start_time, end_time, slot_interval, owner_id FROM services WHERE id = $1`,
		serviceID,
	).Scan(&start, &end, &interval, &ownerID)
	return
}

// insertScheduled writes a Scheduled appointment unless the slot is already
// held. The partial unique index on (service_id, slot_time) WHERE
// status='Scheduled' arbitrates concurrent inserts, and ON CONFLICT DO
// NOTHING turns the lost race into a false return instead of an error.
func insertScheduled(ctx context.Context, a Appointment) (bool, error) {
	res, err := db.Conn.Exec(ctx,
		`INSERT INTO appointments (id, service_id, customer_id, customer_name, customer_email, customer_phone, slot_time, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         ON CONFLICT (service_id, slot_time) WHERE status = 'Scheduled' DO NOTHING`,
		a.ID, a.ServiceID, a.CustomerID, a.CustomerName, a.CustomerEmail, a.CustomerPhone, a.SlotTime, a.Status, a.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// cancelScheduled flips a Scheduled appointment to Canceled, but only when it
// belongs to the given customer. False means no row matched: unknown id,
// someone else's booking, or already cancelled.
func cancelScheduled(ctx context.Context, apptID, customerID string) (bool, error) {
	res, err := db.Conn.Exec(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2 AND customer_id = $3 AND status = $4`,
		StatusCanceled, apptID, customerID, StatusScheduled,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// bookedSlots returns slot labels currently held by Scheduled appointments.
// Canceled appointments do not occupy their slot.
func bookedSlots(ctx context.Context, serviceID string) ([]string, error) {
	rows, err := db.Conn.Query(ctx,
		`SELECT slot_time FROM appointments WHERE service_id = $1 AND status = $2`,
		serviceID, StatusScheduled,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var booked []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		booked = append(booked, s)
	}
	return booked, rows.Err()
}

// =========================
// ListAvailableSlots - free slots for a service, recomputed per call
// =========================
func ListAvailableSlots(c echo.Context) error {
	serviceID := c.Param("id")
	if serviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing service id"})
	}
	if _, err := uuid.Parse(serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id format"})
	}

	ctx := context.Background()
	start, end, interval, _, err := fetchServiceWindow(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch service"})
	}

	candidates, err := GenerateSlots(start, end, interval)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "service has an invalid schedule", "details": err.Error()})
	}

	booked, err := bookedSlots(ctx, serviceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booked slots"})
	}

	return c.JSON(http.StatusOK, echo.Map{"slots": AvailableSlots(candidates, booked)})
}

// =========================
// BookAppointment - Customer books a slot
// =========================
func BookAppointment(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	serviceID := c.Param("id")
	if serviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing service id"})
	}
	if _, err := uuid.Parse(serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id format"})
	}

	var req struct {
		Slot  string `json:"slot"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil || req.Slot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "contact name and email are required"})
	}

	ctx := context.Background()
	start, end, interval, ownerID, err := fetchServiceWindow(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch service"})
	}
	if ownerID == customerID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot book your own service"})
	}

	// The slot must be one of the generated candidates
	candidates, err := GenerateSlots(start, end, interval)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "service has an invalid schedule"})
	}
	valid := false
	for _, s := range candidates {
		if s == req.Slot {
			valid = true
			break
		}
	}
	if !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot is not offered by this service"})
	}

	apptID := uuid.New().String()
	booked, err := insertScheduled(ctx, Appointment{
		ID:            apptID,
		ServiceID:     serviceID,
		CustomerID:    customerID,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		SlotTime:      req.Slot,
		Status:        StatusScheduled,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to book appointment"})
	}
	if !booked {
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot no longer available"})
	}

	// Confirmation email (best-effort)
	_ = alerts.EnqueueBookingConfirmation(apptID, customerID, ownerID, req.Email, req.Slot)

	return c.JSON(http.StatusCreated, echo.Map{
		"appointment_id": apptID,
		"slot":           req.Slot,
		"status":         StatusScheduled,
	})
}

// =========================
// CancelAppointment - Customer cancels a booking
// =========================
func CancelAppointment(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	apptID := c.Param("id")
	if apptID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing appointment id"})
	}
	if _, err := uuid.Parse(apptID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id format"})
	}

	// Marks the record; the freed slot becomes bookable again because the
	// availability query only counts Scheduled rows.
	ok, err := cancelScheduled(context.Background(), apptID, customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel appointment"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "appointment not found, not yours, or already cancelled"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment cancelled"})
}

// =========================
// GetMyAppointments - Customer's bookings
// =========================
func GetMyAppointments(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, service_id, customer_id, customer_name, customer_email, COALESCE(customer_phone, ''), slot_time, status, created_at
         FROM appointments WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch appointments"})
	}
	defer rows.Close()

	list, err := scanAppointments(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse record"})
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": list})
}

// =========================
// GetServiceAppointments - Entrepreneur's view of bookings for one service
// =========================
func GetServiceAppointments(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(string)
	if !ok || ownerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	serviceID := c.Param("id")
	if serviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing service id"})
	}
	if _, err := uuid.Parse(serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id format"})
	}

	// Ownership gate
	var actualOwner string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT owner_id FROM services WHERE id = $1`, serviceID,
	).Scan(&actualOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch service"})
	}
	if actualOwner != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your service"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, service_id, customer_id, customer_name, customer_email, COALESCE(customer_phone, ''), slot_time, status, created_at
         FROM appointments WHERE service_id = $1 ORDER BY slot_time ASC`, serviceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch appointments"})
	}
	defer rows.Close()

	list, err := scanAppointments(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse record"})
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": list})
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	var list []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.CustomerID, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone, &a.SlotTime, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
