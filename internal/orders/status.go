package orders

import (
	"errors"
	"fmt"
)

// Status is an order lifecycle state. The wire strings match what the mobile
// clients display, so they are stored verbatim.
type Status string

const (
	StatusReceived        Status = "Order Received"
	StatusPaymentReceived Status = "Payment Received"
	StatusConfirmed       Status = "Order Confirmed"
	StatusShipped         Status = "Order Shipped"
	StatusComplete        Status = "Order Complete"
	StatusCanceled        Status = "Order Canceled"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotCancelable     = errors.New("order cannot be cancelled at this stage")
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReceived, StatusPaymentReceived, StatusConfirmed, StatusShipped, StatusComplete, StatusCanceled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// allowedTransitions is the single authority for order progression: strictly
// forward, one step at a time, with cancellation as a side branch out of the
// two early states.
var allowedTransitions = map[Status]map[Status]bool{
	StatusReceived:        {StatusPaymentReceived: true, StatusCanceled: true},
	StatusPaymentReceived: {StatusConfirmed: true},
	StatusConfirmed:       {StatusShipped: true, StatusCanceled: true},
	StatusShipped:         {StatusComplete: true},
	StatusComplete:        {},
	StatusCanceled:        {},
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// Advance validates an entrepreneur-driven forward step. Cancellation is not
// an advance; it has its own authority rules (see Cancelable).
func Advance(from, to Status) error {
	if to == StatusCanceled || !CanTransition(from, to) {
		return ErrIllegalTransition
	}
	return nil
}

// Cancelable reports whether the owning customer may still cancel.
func Cancelable(s Status) bool {
	return s == StatusReceived || s == StatusConfirmed
}

// Terminal reports whether no further transitions exist.
func Terminal(s Status) bool {
	return len(allowedTransitions[s]) == 0
}
