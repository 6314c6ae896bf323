package user

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/supporta-app/supporta/internal/db"
)

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PATCH /user/profile
func UpdateProfile(c echo.Context) error {
	userIDVal := c.Get("user_id")
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    email = COALESCE(NULLIF($2, ''), email)
		WHERE id = $3
	`
	_, err := db.Conn.Exec(c.Request().Context(), query, req.Name, req.Email, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated successfully",
	})
}
