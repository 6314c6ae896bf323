package admin

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/supporta-app/supporta/internal/db"
)

// GET /admin/reports
func Reports(c echo.Context) error {
    ctx := context.Background()

    var admins, entrepreneurs, customers int
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&admins)
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'entrepreneur'`).Scan(&entrepreneurs)
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'customer'`).Scan(&customers)

    var products, services, appointments, reviews int
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&products)
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&services)
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&appointments)
    _ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&reviews)

    // Orders broken out per lifecycle state
    ordersByStatus := map[string]int{}
    rows, err := db.Conn.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
    if err == nil {
        defer rows.Close()
        for rows.Next() {
            var status string
            var count int
            if err := rows.Scan(&status, &count); err == nil {
                ordersByStatus[status] = count
            }
        }
    }

    return c.JSON(http.StatusOK, echo.Map{
        "users": echo.Map{
            "admins":        admins,
            "entrepreneurs": entrepreneurs,
            "customers":     customers,
        },
        "products":         products,
        "services":         services,
        "appointments":     appointments,
        "reviews":          reviews,
        "orders_by_status": ordersByStatus,
    })
}
