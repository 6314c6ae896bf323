package orders

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/supporta-app/supporta/internal/alerts"
	"github.com/supporta-app/supporta/internal/db"
)

// lookupCustomerOrder loads an order's owner and current status, but only
// when it belongs to the given customer. Anyone else's id yields
// pgx.ErrNoRows, same as an unknown order.
func lookupCustomerOrder(ctx context.Context, orderID, customerID string) (ownerID, statusStr string, err error) {
	err = db.Conn.QueryRow(ctx,
		`SELECT owner_id, status FROM orders WHERE id = $1 AND customer_id = $2`,
		orderID, customerID,
	).Scan(&ownerID, &statusStr)
	return
}

// casOrderStatus moves an order to a new status with a compare-and-set on the
// prior one. False means the row was no longer in the expected status, which
// a concurrent writer can cause.
func casOrderStatus(ctx context.Context, orderID string, from, to Status) (bool, error) {
	res, err := db.Conn.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		string(to), orderID, string(from),
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// =========================
// CreateOrder - Customer places an order for a product
// =========================
func CreateOrder(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product_id"})
	}
	if _, err := uuid.Parse(req.ProductID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product_id"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive integer"})
	}

	var ownerID, productName string
	var unitPrice float64
	err := db.Conn.QueryRow(context.Background(),
		`SELECT owner_id, name, price FROM products WHERE id = $1`,
		req.ProductID,
	).Scan(&ownerID, &productName, &unitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch product"})
	}

	if ownerID == customerID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot order your own product"})
	}

	// Total is computed from the current unit price and frozen on the row
	totalPrice := float64(req.Quantity) * unitPrice

	orderID := uuid.New().String()
	_, err = db.Conn.Exec(context.Background(),
		`INSERT INTO orders (id, product_id, product_name, customer_id, owner_id, quantity, total_price, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		orderID, req.ProductID, productName, customerID, ownerID, req.Quantity, totalPrice, string(StatusReceived), time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":    orderID,
		"status":      StatusReceived,
		"total_price": totalPrice,
		"message":     "Order placed successfully.",
	})
}

// =========================
// AdvanceOrder - Entrepreneur moves an order one step forward
// =========================
func AdvanceOrder(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(string)
	if !ok || ownerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id in URL"})
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id format"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing target status"})
	}
	target, err := ParseStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var customerID string
	var currentStr string
	err = db.Conn.QueryRow(context.Background(),
		`SELECT customer_id, status FROM orders WHERE id = $1 AND owner_id = $2`,
		orderID, ownerID,
	).Scan(&customerID, &currentStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found or not yours"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}

	current, err := ParseStatus(currentStr)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "order has unknown status"})
	}
	if err := Advance(current, target); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  err.Error(),
			"from":   current,
			"target": target,
		})
	}

	// Compare-and-set on the prior status: a concurrent writer loses here
	moved, err := casOrderStatus(context.Background(), orderID, current, target)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order status"})
	}
	if !moved {
		return c.JSON(http.StatusConflict, echo.Map{"error": "order status changed concurrently, retry"})
	}

	// Notify customer of progress (best-effort)
	var customerEmail string
	_ = db.Conn.QueryRow(context.Background(), `SELECT email FROM users WHERE id = $1`, customerID).Scan(&customerEmail)
	if customerEmail != "" {
		_ = alerts.EnqueueOrderStatusChanged(orderID, customerID, customerEmail, string(target))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "order status updated", "status": target})
}

// =========================
// CancelOrder - Customer cancels an order
// =========================
func CancelOrder(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id in URL"})
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id format"})
	}

	ownerID, currentStr, err := lookupCustomerOrder(context.Background(), orderID, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}

	current, err := ParseStatus(currentStr)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "order has unknown status"})
	}
	if !Cancelable(current) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ErrNotCancelable.Error()})
	}

	// Cancellation marks the row, never deletes it
	moved, err := casOrderStatus(context.Background(), orderID, current, StatusCanceled)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order status"})
	}
	if !moved {
		return c.JSON(http.StatusConflict, echo.Map{"error": "order status changed concurrently, retry"})
	}

	// Notify entrepreneur of cancellation (best-effort)
	var ownerEmail string
	_ = db.Conn.QueryRow(context.Background(), `SELECT email FROM users WHERE id = $1`, ownerID).Scan(&ownerEmail)
	if ownerEmail != "" {
		_ = alerts.EnqueueOrderStatusChanged(orderID, ownerID, ownerEmail, string(StatusCanceled))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Order cancelled"})
}

// =========================
// GetUserOrders - Fetch all orders for a user (as customer or listing owner)
// =========================
func GetUserOrders(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, product_id, product_name, customer_id, owner_id, quantity, total_price, status, created_at
		 FROM orders WHERE customer_id = $1 OR owner_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch orders"})
	}
	defer rows.Close()

	var list []Order
	for rows.Next() {
		var o Order
		var status string
		if err := rows.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.CustomerID, &o.OwnerID, &o.Quantity, &o.TotalPrice, &status, &o.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse record"})
		}
		o.Status = Status(status)
		list = append(list, o)
	}

	return c.JSON(http.StatusOK, echo.Map{"orders": list})
}
