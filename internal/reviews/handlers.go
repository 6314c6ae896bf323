package reviews

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/supporta-app/supporta/internal/db"
)

// Review is an append-only rating attached to one product
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	CustomerID string    `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// CreateReview allows a customer to rate and review a product
func CreateReview(c echo.Context) error {
	customerID, ok := c.Get("user_id").(string)
	if !ok || customerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing product id"})
	}
	if _, err := uuid.Parse(productID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id format"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if len(req.Comment) > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment too long (max 1000 characters)"})
	}

	ctx := context.Background()

	// The product must exist; reviews are append-only after that
	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT owner_id FROM products WHERE id = $1`, productID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch product"})
	}

	reviewID := uuid.New().String()
	_, err = db.Conn.Exec(ctx,
		`INSERT INTO reviews (id, product_id, customer_id, rating, comment, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		reviewID, productID, customerID, req.Rating, req.Comment, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"review_id": reviewID,
		"message":   "review submitted successfully",
	})
}

// GetProductReviews lists a product's reviews with the on-demand average
func GetProductReviews(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing product id"})
	}
	if _, err := uuid.Parse(productID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id format"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, product_id, customer_id, rating, COALESCE(comment, ''), created_at
         FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reviews"})
	}
	defer rows.Close()

	var list []Review
	var ratings []int
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.CustomerID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse record"})
		}
		list = append(list, r)
		ratings = append(ratings, r.Rating)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reviews":        list,
		"total_reviews":  len(list),
		"average_rating": AverageRating(ratings),
	})
}
