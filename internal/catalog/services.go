package catalog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/supporta-app/supporta/internal/db"
)

var validDays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// validateSchedule checks working days, the HH:MM window, and the interval
func validateSchedule(workingDays, startTime, endTime string, interval int) (string, bool) {
	if workingDays == "" {
		return "working days are required", false
	}
	for _, day := range strings.Split(workingDays, ",") {
		d := strings.ToLower(strings.TrimSpace(day))
		if len(d) > 3 {
			d = d[:3]
		}
		if !validDays[d] {
			return "working days must be day names like Mon, Wed, Fri", false
		}
	}

	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return "start time must be in HH:MM format", false
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return "end time must be in HH:MM format", false
	}
	if !start.Before(end) {
		return "start time must be before end time", false
	}
	if interval <= 0 {
		return "slot interval must be a positive number of minutes", false
	}
	return "", true
}

// CreateService allows an entrepreneur to list a bookable service
func CreateService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		BusinessName string `json:"business_name"`
		Category     string `json:"category"`
		WorkingDays  string `json:"working_days"`
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		SlotInterval int    `json:"slot_interval"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.BusinessName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "business name is required"})
	}
	if msg, ok := validateSchedule(req.WorkingDays, req.StartTime, req.EndTime, req.SlotInterval); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	serviceID := uuid.New().String()

	_, err := db.Conn.Exec(
		context.Background(),
		`INSERT INTO services (id, owner_id, business_name, category, working_days, start_time, end_time, slot_interval, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		serviceID, uid, req.BusinessName, req.Category, req.WorkingDays, req.StartTime, req.EndTime, req.SlotInterval, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create service"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"service_id": serviceID,
		"message":    "service created successfully",
	})
}

// UpdateService - owner-gated edit; a changed schedule revalidates in full
func UpdateService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	serviceID := c.Param("id")
	if serviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing service id"})
	}
	if _, err := uuid.Parse(serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id format"})
	}

	// Load current row first so partial updates still validate as a whole
	var cur Service
	err := db.Conn.QueryRow(context.Background(),
		`SELECT business_name, COALESCE(category, ''), working_days, start_time, end_time, slot_interval
		 FROM services WHERE id = $1 AND owner_id = $2`, serviceID, uid,
	).Scan(&cur.BusinessName, &cur.Category, &cur.WorkingDays, &cur.StartTime, &cur.EndTime, &cur.SlotInterval)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found or not yours"})
	}

	var req struct {
		BusinessName string `json:"business_name"`
		Category     string `json:"category"`
		WorkingDays  string `json:"working_days"`
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		SlotInterval int    `json:"slot_interval"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.BusinessName == "" {
		req.BusinessName = cur.BusinessName
	}
	if req.Category == "" {
		req.Category = cur.Category
	}
	if req.WorkingDays == "" {
		req.WorkingDays = cur.WorkingDays
	}
	if req.StartTime == "" {
		req.StartTime = cur.StartTime
	}
	if req.EndTime == "" {
		req.EndTime = cur.EndTime
	}
	if req.SlotInterval == 0 {
		req.SlotInterval = cur.SlotInterval
	}

	if msg, ok := validateSchedule(req.WorkingDays, req.StartTime, req.EndTime, req.SlotInterval); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	_, err = db.Conn.Exec(context.Background(), `
		UPDATE services
		SET business_name = $1, category = $2, working_days = $3,
		    start_time = $4, end_time = $5, slot_interval = $6
		WHERE id = $7 AND owner_id = $8
	`, req.BusinessName, req.Category, req.WorkingDays, req.StartTime, req.EndTime, req.SlotInterval, serviceID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update service"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "service updated successfully"})
}

// DeleteService - owner-gated delete
func DeleteService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	serviceID := c.Param("id")
	if serviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing service id"})
	}
	if _, err := uuid.Parse(serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id format"})
	}

	res, err := db.Conn.Exec(context.Background(),
		`DELETE FROM services WHERE id = $1 AND owner_id = $2`, serviceID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete service"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found or not yours"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "service deleted"})
}

// GetAllServices returns every service for customer browsing
func GetAllServices(c echo.Context) error {
	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, owner_id, business_name, COALESCE(category, ''), working_days, start_time, end_time, slot_interval, created_at
		 FROM services ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch services"})
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.BusinessName, &s.Category, &s.WorkingDays, &s.StartTime, &s.EndTime, &s.SlotInterval, &s.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse service record"})
		}
		services = append(services, s)
	}

	return c.JSON(http.StatusOK, echo.Map{"services": services})
}

// GetMyServices returns the authenticated entrepreneur's services
func GetMyServices(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(
		context.Background(),
		`SELECT id, owner_id, business_name, COALESCE(category, ''), working_days, start_time, end_time, slot_interval, created_at
		 FROM services WHERE owner_id = $1 ORDER BY created_at DESC`,
		uid,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch services"})
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.BusinessName, &s.Category, &s.WorkingDays, &s.StartTime, &s.EndTime, &s.SlotInterval, &s.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse service record"})
		}
		services = append(services, s)
	}

	return c.JSON(http.StatusOK, echo.Map{"services": services})
}

// SearchListings - case-insensitive substring search across products and
// services, filtered in memory over the full snapshot as the clients do
func SearchListings(c echo.Context) error {
	q := c.QueryParam("q")

	ctx := context.Background()
	var snapshot []Listing

	rows, err := db.Conn.Query(ctx,
		`SELECT id, owner_id, name, COALESCE(category, '') FROM products ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch products"})
	}
	for rows.Next() {
		l := Listing{Kind: "product"}
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Category); err != nil {
			rows.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse product record"})
		}
		l.Icon = CategoryIcon(l.Category)
		snapshot = append(snapshot, l)
	}
	rows.Close()

	rows, err = db.Conn.Query(ctx,
		`SELECT id, owner_id, business_name, COALESCE(category, '') FROM services ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch services"})
	}
	for rows.Next() {
		l := Listing{Kind: "service"}
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Category); err != nil {
			rows.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse service record"})
		}
		l.Icon = CategoryIcon(l.Category)
		snapshot = append(snapshot, l)
	}
	rows.Close()

	return c.JSON(http.StatusOK, echo.Map{"results": FilterListings(snapshot, q)})
}
