package auth

import (
	"context"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/supporta-app/supporta/internal/db"
)

// Me returns the currently authenticated user's identity record
func Me(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing Authorization header"})
	}

	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid Authorization format"})
	}
	tokenStr := authHeader[len(prefix):]

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token claims"})
	}

	var (
		name     string
		email    string
		role     string
		isActive bool
	)
	err = db.Conn.QueryRow(context.Background(), `
        SELECT name, email, role, COALESCE(is_active, TRUE) FROM users WHERE id = $1
    `, userID).Scan(&name, &email, &role, &isActive)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":        userID,
		"name":      name,
		"email":     email,
		"role":      role,
		"is_active": isActive,
	})
}
