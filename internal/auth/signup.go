package auth

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/supporta-app/supporta/internal/alerts"
	"github.com/supporta-app/supporta/internal/db"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignupResponse struct {
	Token string `json:"token"`
}

// ===== Customer signup =====
func Signup(c echo.Context) error {
	return signupWithRole(c, "customer")
}

// ===== Entrepreneur signup =====
func SignupEntrepreneur(c echo.Context) error {
	return signupWithRole(c, "entrepreneur")
}

func signupWithRole(c echo.Context, role string) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and a password of at least 6 characters are required"})
	}

	// Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	ctx := context.Background()

	var userID string
	err = db.Conn.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`, uuid.New().String(), req.Name, req.Email, string(hashed), role).Scan(&userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
	}

	// Welcome email (best-effort)
	_ = alerts.EnqueueWelcomeEmail(userID, req.Email, req.Name)

	signed, err := issueToken(userID, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, SignupResponse{Token: signed})
}

func issueToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
