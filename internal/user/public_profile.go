package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/supporta-app/supporta/internal/db"
)

// GET /user/:id/profile
func GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}
	if _, err := uuid.Parse(userID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id format"})
	}

	var (
		id        string
		name      string
		role      string
		createdAt time.Time
	)

	query := `
		SELECT id, name, role, created_at
		FROM users
		WHERE id = $1
	`

	err := db.Conn.QueryRow(context.Background(), query, userID).Scan(
		&id,
		&name,
		&role,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to fetch user",
		})
	}

	profile := echo.Map{
		"id":         id,
		"name":       name,
		"role":       role,
		"created_at": createdAt.Format(time.RFC3339),
	}

	return c.JSON(http.StatusOK, profile)
}
