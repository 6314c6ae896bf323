package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init()
	}
	return client
}

// EnqueueWelcomeEmail schedules a welcome email to the user
func EnqueueWelcomeEmail(userID, email, name string) error {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	base = strings.TrimRight(base, "/")

	subject := fmt.Sprintf("Welcome to Supporta, %s!", name)
	body := fmt.Sprintf("Hi %s, thanks for joining Supporta.\n\nOpen Supporta: %s\n\nIf the link doesn't work, copy and paste the URL above.", name, base)

	env := EmailEnvelope{
		To:      email,
		Subject: subject,
		Body:    body,
	}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWelcomeEmail, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueBookingConfirmation notifies the customer after booking a slot
func EnqueueBookingConfirmation(appointmentID, customerID, entrepreneurID, customerEmail, slot string) error {
	env := EmailEnvelope{
		To:      customerEmail,
		Subject: "Your appointment is scheduled",
		Body:    fmt.Sprintf("Appointment %s is scheduled for %s.", appointmentID, slot),
	}
	payload := BookingConfirmationPayload{
		AppointmentID:  appointmentID,
		CustomerID:     customerID,
		EntrepreneurID: entrepreneurID,
		Email:          customerEmail,
		Slot:           slot,
		Envelope:       env,
		SentAt:         time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskBookingConfirmation, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueOrderStatusChanged notifies the other party of an order's new status
func EnqueueOrderStatusChanged(orderID, userID, email, status string) error {
	env := EmailEnvelope{
		To:      email,
		Subject: fmt.Sprintf("Order update: %s", status),
		Body:    fmt.Sprintf("Order %s is now \"%s\".", orderID, status),
	}
	payload := OrderStatusChangedPayload{OrderID: orderID, UserID: userID, Email: email, Status: status, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskOrderStatusChanged, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueuePasswordReset schedules a password reset notification
func EnqueuePasswordReset(userID, email, resetURL, name string) error {
	expiry := os.Getenv("PASSWORD_RESET_EXP_MINUTES")
	if expiry == "" {
		expiry = "30"
	}
	subject := "Password reset instructions"
	body := fmt.Sprintf("Hello %s,\n\nWe received a request to reset your Supporta password.\n\nTo proceed, open the link below:\n%s\n\nThis link expires in %s minutes. If you did not request this, no action is required.\n\nNeed help? Reply to this email.\n\n— Supporta Team", name, resetURL, expiry)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := PasswordResetPayload{UserID: userID, Email: email, ResetURL: resetURL, Envelope: env, Requested: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskPasswordReset, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}
