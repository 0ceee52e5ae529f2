package domain

import "errors"

var (
	// ErrCustomerNotFound is returned when the authenticated identity does not
	// resolve to a customer record.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrAddressNotFound covers both an unknown address id and an address that
	// belongs to a different customer; callers never learn which.
	ErrAddressNotFound = errors.New("address not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	// ErrAccessDenied is returned before any order data is exposed to a caller
	// that does not own it.
	ErrAccessDenied = errors.New("access denied")
	// ErrValidation is the base for all bad-input failures; wrap it with detail.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition rejects a status move not allowed by the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAllocation signals the order number source was unavailable.
	ErrAllocation = errors.New("order number allocation failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user email already registered")
	ErrDuplicateCustomer  = errors.New("email or cpf already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
