package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supporta-app/supporta/internal/db"
)

// DeleteAccount removes the caller's identity record. Listings cascade with
// the owner; orders and appointments keep their customer ids so history
// survives as orphaned references.
func DeleteAccount(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ct, err := db.Conn.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete account"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted"})
}
