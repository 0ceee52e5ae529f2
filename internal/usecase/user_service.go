package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/security"
)

// UserService manages back-office accounts: list, search, create, edit,
// enable/disable and password changes. Customers are out of its reach; they
// register themselves through CustomerService.
type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

type CreateUserInput struct {
	Name     string
	CPF      string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Name string
	CPF  string
	Role string
	// Password is optional; empty leaves the current one in place.
	Password string
}

// List returns all staff accounts, or those matching a name fragment.
func (s *UserService) List(ctx context.Context, nameFilter string) ([]domain.User, error) {
	return s.users.List(ctx, nameFilter)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create validates CPF, email and role before persisting. New accounts start
// active.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	role, err := validateStaffUser(in.Name, in.CPF, in.Email, in.Role)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must have at least 6 characters", domain.ErrValidation)
	}

	if _, err := s.users.GetByEmail(ctx, strings.ToLower(in.Email)); err == nil {
		return nil, domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		CPF:          in.CPF,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update edits name, CPF and role. Email is immutable after creation; a
// non-empty password replaces the current one.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := validateStaffUser(in.Name, in.CPF, u.Email, in.Role)
	if err != nil {
		return nil, err
	}

	u.Name = in.Name
	u.CPF = in.CPF
	u.Role = role
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, fmt.Errorf("%w: password must have at least 6 characters", domain.ErrValidation)
		}
		hash, err := security.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ToggleActive flips the account between enabled and disabled. Disabled
// accounts fail login the same way as wrong passwords.
func (s *UserService) ToggleActive(ctx context.Context, id string) (bool, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	u.Active = !u.Active
	if err := s.users.Update(ctx, u); err != nil {
		return false, err
	}
	return u.Active, nil
}

// ChangePassword replaces the account password.
func (s *UserService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must have at least 6 characters", domain.ErrValidation)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.users.Update(ctx, u)
}

func validateStaffUser(name, cpf, email, role string) (domain.Role, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !domain.ValidCPF(cpf) {
		return "", fmt.Errorf("%w: invalid cpf", domain.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	return domain.ParseStaffRole(role)
}
