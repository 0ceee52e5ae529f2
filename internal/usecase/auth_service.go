package usecase

import (
	"context"
	"errors"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/security"
)

// AuthService validates credentials. Token signing stays in the HTTP layer;
// this component never sees a JWT.
type AuthService struct {
	users     UserRepo
	customers CustomerRepo
}

func NewAuthService(users UserRepo, customers CustomerRepo) *AuthService {
	return &AuthService{users: users, customers: customers}
}

// Identity is the verified result of a login, consumed by the token issuer.
type Identity struct {
	Email string
	Name  string
	Role  domain.Role
}

// StaffLogin authenticates a back-office user. Disabled accounts are rejected
// the same way as wrong passwords.
func (s *AuthService) StaffLogin(ctx context.Context, email, password string) (*Identity, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active || !security.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return &Identity{Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// CustomerLogin authenticates a storefront customer.
func (s *AuthService) CustomerLogin(ctx context.Context, email, password string) (*Identity, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.CheckPassword(customer.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return &Identity{Email: customer.Email, Name: customer.FullName, Role: domain.RoleCustomer}, nil
}
