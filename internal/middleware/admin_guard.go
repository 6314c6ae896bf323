package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminGuard fences the /admin surface: the user directory, the
// suspend/activate endpoints, and the platform reports. It runs after
// JWTMiddleware, so the role claim is already on the context.
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if role, _ := c.Get("role").(string); role != "admin" {
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "admin access only",
			})
		}
		return next(c)
	}
}
