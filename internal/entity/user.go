package domain

import "fmt"

// Role gates service methods. Customers may only read their own orders; staff
// roles drive the back-office.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleStockist Role = "STOCKIST"
)

// ParseStaffRole validates a role value for back-office accounts. Customers
// are never created through user management.
func ParseStaffRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleStockist:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown staff role %q", ErrValidation, s)
}

// User is a back-office account (admin or stockist).
type User struct {
	ID           string
	Name         string
	Email        string
	CPF          string
	PasswordHash string
	Role         Role
	Active       bool
}
