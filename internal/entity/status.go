package domain

import "fmt"

// Status is the order lifecycle state.
type Status string

const (
	StatusAwaitingPayment  Status = "AWAITING_PAYMENT"
	StatusPaymentSucceeded Status = "PAYMENT_SUCCEEDED"
	StatusPaymentRejected  Status = "PAYMENT_REJECTED"
	StatusAwaitingPickup   Status = "AWAITING_PICKUP"
	StatusInTransit        Status = "IN_TRANSIT"
	StatusDelivered        Status = "DELIVERED"
	StatusCancelled        Status = "CANCELLED"
)

// forward holds the allowed forward moves per state. Cancellation is handled
// separately: any non-terminal state may cancel.
var forward = map[Status][]Status{
	StatusAwaitingPayment:  {StatusPaymentSucceeded, StatusPaymentRejected},
	StatusPaymentSucceeded: {StatusAwaitingPickup, StatusInTransit},
	StatusPaymentRejected:  {StatusAwaitingPickup, StatusInTransit},
	StatusAwaitingPickup:   {StatusDelivered},
	StatusInTransit:        {StatusDelivered},
}

// ParseStatus validates an external status value.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAwaitingPayment, StatusPaymentSucceeded, StatusPaymentRejected,
		StatusAwaitingPickup, StatusInTransit, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. Self-transitions are rejected.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() || next == s {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	for _, t := range forward[s] {
		if t == next {
			return true
		}
	}
	return false
}
