package alerts

import "time"

// Task type constants
const (
    TaskWelcomeEmail        = "email:welcome"
    TaskBookingConfirmation = "email:booking_confirmation"
    TaskOrderStatusChanged  = "email:order_status_changed"
    TaskPasswordReset       = "email:password_reset"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
    To      string `json:"to"`
    Subject string `json:"subject"`
    Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
    UserID   string        `json:"user_id"`
    Name     string        `json:"name"`
    Email    string        `json:"email"`
    Envelope EmailEnvelope `json:"envelope"`
    SentAt   time.Time     `json:"sent_at"`
}

// Booking confirmation payload (sent to the customer right after booking)
type BookingConfirmationPayload struct {
    AppointmentID  string        `json:"appointment_id"`
    CustomerID     string        `json:"customer_id"`
    EntrepreneurID string        `json:"entrepreneur_id"`
    Email          string        `json:"email"`
    Slot           string        `json:"slot"`
    Envelope       EmailEnvelope `json:"envelope"`
    SentAt         time.Time     `json:"sent_at"`
}

// Order status change payload (sent to whichever party did not act)
type OrderStatusChangedPayload struct {
    OrderID  string        `json:"order_id"`
    UserID   string        `json:"user_id"`
    Email    string        `json:"email"`
    Status   string        `json:"status"`
    Envelope EmailEnvelope `json:"envelope"`
    SentAt   time.Time     `json:"sent_at"`
}

// Password reset payload
type PasswordResetPayload struct {
    UserID    string        `json:"user_id"`
    Email     string        `json:"email"`
    ResetURL  string        `json:"reset_url"`
    Envelope  EmailEnvelope `json:"envelope"`
    Requested time.Time     `json:"requested"`
}
