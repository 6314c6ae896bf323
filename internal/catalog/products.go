package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/supporta-app/supporta/internal/db"
)

// CreateProduct allows an entrepreneur to list a new product
func CreateProduct(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		Name              string  `json:"name"`
		Description       string  `json:"description"`
		Category          string  `json:"category"`
		Price             float64 `json:"price"`
		ShippingAvailable bool    `json:"shipping_available"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and valid price are required"})
	}

	productID := uuid.New().String()

	_, err := db.Conn.Exec(
		context.Background(),
		`INSERT INTO products (id, owner_id, name, description, category, price, shipping_available, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		productID, uid, req.Name, req.Description, req.Category, req.Price, req.ShippingAvailable, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"product_id": productID,
		"message":    "product created successfully",
	})
}

// UpdateProduct - owner-gated edit
func UpdateProduct(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing product id"})
	}
	if _, err := uuid.Parse(productID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id format"})
	}

	var req struct {
		Name              string  `json:"name"`
		Description       string  `json:"description"`
		Category          string  `json:"category"`
		Price             float64 `json:"price"`
		ShippingAvailable *bool   `json:"shipping_available"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}

	// The owner_id guard makes this a no-op for anyone else
	res, err := db.Conn.Exec(context.Background(), `
		UPDATE products
		SET name = COALESCE(NULLIF($1, ''), name),
		    description = COALESCE(NULLIF($2, ''), description),
		    category = COALESCE(NULLIF($3, ''), category),
		    price = CASE WHEN $4 > 0 THEN $4 ELSE price END,
		    shipping_available = COALESCE($5, shipping_available)
		WHERE id = $6 AND owner_id = $7
	`, req.Name, req.Description, req.Category, req.Price, req.ShippingAvailable, productID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update product"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found or not yours"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "product updated successfully"})
}

// DeleteProduct - owner-gated delete
func DeleteProduct(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing product id"})
	}
	if _, err := uuid.Parse(productID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id format"})
	}

	res, err := db.Conn.Exec(context.Background(),
		`DELETE FROM products WHERE id = $1 AND owner_id = $2`, productID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete product"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found or not yours"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

// GetAllProducts returns every product for customer browsing
func GetAllProducts(c echo.Context) error {
	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, owner_id, name, COALESCE(description, ''), COALESCE(category, ''), price, shipping_available, created_at
		 FROM products ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch products"})
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Category, &p.Price, &p.ShippingAvailable, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse product record"})
		}
		products = append(products, p)
	}

	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// GetMyProducts returns the authenticated entrepreneur's products
func GetMyProducts(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(
		context.Background(),
		`SELECT id, owner_id, name, COALESCE(description, ''), COALESCE(category, ''), price, shipping_available, created_at
		 FROM products WHERE owner_id = $1 ORDER BY created_at DESC`,
		uid,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch products"})
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Category, &p.Price, &p.ShippingAvailable, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse product record"})
		}
		products = append(products, p)
	}

	return c.JSON(http.StatusOK, echo.Map{"products": products})
}
