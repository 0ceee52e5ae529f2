package domain

import "time"

// Address is a shippable (or billing) address owned by one customer. Street,
// district, city and state come from the postal lookup; number and complement
// from the customer.
type Address struct {
	ID         string
	CustomerID string
	CEP        string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	Billing    bool
	Default    bool
}

// Customer is a storefront account. Orders reference customers by ID, never by
// embedded copy.
type Customer struct {
	ID           string
	FullName     string
	Email        string
	CPF          string
	BirthDate    time.Time
	Gender       string
	PasswordHash string
	CreatedAt    time.Time
}
