package appointments

import "time"

const (
	StatusScheduled = "Scheduled"
	StatusCanceled  = "Canceled"
)

// Appointment is a customer's booking of one service slot. Contact info is
// captured redundantly at booking time rather than joined live, so the record
// stays meaningful if the identity is later deleted.
type Appointment struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service_id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	SlotTime      string    `json:"slot_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
