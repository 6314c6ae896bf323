package orders

import "time"

// Order is a customer's purchase of a product listing. TotalPrice is frozen
// at creation time and never recomputed from the listing.
type Order struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	CustomerID  string    `json:"customer_id"`
	OwnerID     string    `json:"owner_id"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
