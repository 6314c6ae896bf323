package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/supporta-app/supporta/internal/alerts"
	"github.com/supporta-app/supporta/internal/db"
)

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RequestPasswordResetResponse struct {
	Message string `json:"message"`
}

// POST /auth/password/request
// Always responds with a generic message to avoid user enumeration.
func RequestPasswordReset(c echo.Context) error {
	const generic = "If the email exists, a reset link has been sent."

	req := new(RequestPasswordResetRequest)
	if err := c.Bind(req); err != nil || req.Email == "" {
		return c.JSON(http.StatusOK, RequestPasswordResetResponse{Message: generic})
	}

	var userID string
	var name string
	err := db.Conn.QueryRow(context.Background(), `SELECT id, name FROM users WHERE email = $1`, req.Email).Scan(&userID, &name)
	if err != nil || userID == "" {
		// Do not reveal existence
		return c.JSON(http.StatusOK, RequestPasswordResetResponse{Message: generic})
	}

	expiryMinutes := 30
	if v := os.Getenv("PASSWORD_RESET_EXP_MINUTES"); v != "" {
		if dur, parseErr := time.ParseDuration(v + "m"); parseErr == nil {
			expiryMinutes = int(dur.Minutes())
		}
	}

	// Single-use token row; confirmation marks used_at
	token := uuid.New().String()
	_, err = db.Conn.Exec(context.Background(), `
        INSERT INTO password_resets (token, user_id, expires_at)
        VALUES ($1, $2, $3)
    `, token, userID, time.Now().Add(time.Duration(expiryMinutes)*time.Minute))
	if err != nil {
		return c.JSON(http.StatusOK, RequestPasswordResetResponse{Message: generic})
	}

	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(base, "/"), url.QueryEscape(token))

	_ = alerts.EnqueuePasswordReset(userID, req.Email, resetURL, name)

	return c.JSON(http.StatusOK, RequestPasswordResetResponse{Message: generic})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// POST /auth/password/reset
func ResetPassword(c echo.Context) error {
	req := new(ResetPasswordRequest)
	if err := c.Bind(req); err != nil || req.Token == "" || len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := context.Background()

	// Claim the token: unexpired and unused, marked used in the same write
	var userID string
	err := db.Conn.QueryRow(ctx, `
        UPDATE password_resets SET used_at = NOW()
        WHERE token = $1 AND used_at IS NULL AND expires_at > NOW()
        RETURNING user_id
    `, req.Token).Scan(&userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	ct, err := db.Conn.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, string(hashed), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update password"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}
