package admin

import (
    "context"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/supporta-app/supporta/internal/db"
)

type AdminUser struct {
    ID        string    `json:"id"`
    Name      string    `json:"name"`
    Email     string    `json:"email"`
    Role      string    `json:"role"`
    IsActive  bool      `json:"is_active"`
    CreatedAt time.Time `json:"created_at"`
}

// GET /admin/users?q=
func ListUsers(c echo.Context) error {
    ctx := context.Background()

    q := c.QueryParam("q")
    query := `SELECT id, name, email, role, COALESCE(is_active, TRUE) as is_active, created_at
              FROM users ORDER BY created_at DESC`
    args := []any{}
    if q != "" {
        query = `SELECT id, name, email, role, COALESCE(is_active, TRUE) as is_active, created_at
                 FROM users WHERE name ILIKE $1 OR email ILIKE $1 ORDER BY created_at DESC`
        args = append(args, "%"+q+"%")
    }

    rows, err := db.Conn.Query(ctx, query, args...)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch users"})
    }
    defer rows.Close()

    var users []AdminUser
    for rows.Next() {
        var u AdminUser
        if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read user record"})
        }
        users = append(users, u)
    }
    return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// POST /admin/users/:id/suspend
func SuspendUser(c echo.Context) error {
    userID := c.Param("id")
    if userID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
    }
    if _, err := uuid.Parse(userID); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id format"})
    }
    ct, err := db.Conn.Exec(context.Background(), `UPDATE users SET is_active = FALSE WHERE id = $1`, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to suspend user"})
    }
    if ct.RowsAffected() == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "user suspended", "user_id": userID})
}

// POST /admin/users/:id/activate
func ActivateUser(c echo.Context) error {
    userID := c.Param("id")
    if userID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
    }
    if _, err := uuid.Parse(userID); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id format"})
    }
    ct, err := db.Conn.Exec(context.Background(), `UPDATE users SET is_active = TRUE WHERE id = $1`, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to activate user"})
    }
    if ct.RowsAffected() == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "user activated", "user_id": userID})
}
