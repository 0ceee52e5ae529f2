package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/security"
)

// CustomerService covers registration, the checkout address page and address
// management. Profile editing beyond addresses is out of scope.
type CustomerService struct {
	customers CustomerRepo
	cep       CEPLookup
}

func NewCustomerService(customers CustomerRepo, cep CEPLookup) *CustomerService {
	return &CustomerService{customers: customers, cep: cep}
}

type AddressInput struct {
	CEP        string
	Number     string
	Complement string
	Default    bool
}

type RegisterCustomerInput struct {
	FullName          string
	Email             string
	CPF               string
	BirthDate         time.Time
	Gender            string
	Password          string
	BillingAddress    AddressInput
	DeliveryAddresses []AddressInput
}

// Register creates the customer together with the billing address and at
// least one delivery address. Street, district, city and state always come
// from the postal lookup, never from the request.
func (s *CustomerService) Register(ctx context.Context, in RegisterCustomerInput) error {
	if err := validateRegistration(in); err != nil {
		return err
	}
	exists, err := s.customers.ExistsByEmailOrCPF(ctx, in.Email, in.CPF)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateCustomer
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return err
	}

	customer := &domain.Customer{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        strings.ToLower(in.Email),
		CPF:          in.CPF,
		BirthDate:    in.BirthDate,
		Gender:       in.Gender,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	billing, err := s.resolveAddress(ctx, customer.ID, in.BillingAddress)
	if err != nil {
		return err
	}
	billing.Billing = true

	addresses := []domain.Address{*billing}
	for i, a := range in.DeliveryAddresses {
		resolved, err := s.resolveAddress(ctx, customer.ID, a)
		if err != nil {
			return err
		}
		resolved.Default = a.Default || (i == 0 && !anyDefault(in.DeliveryAddresses))
		addresses = append(addresses, *resolved)
	}

	return s.customers.Create(ctx, customer, addresses)
}

func anyDefault(addrs []AddressInput) bool {
	for _, a := range addrs {
		if a.Default {
			return true
		}
	}
	return false
}

func validateRegistration(in RegisterCustomerInput) error {
	// At least two words of three letters each, same rule the storefront
	// enforces on signup forms.
	words := strings.Fields(in.FullName)
	long := 0
	for _, w := range words {
		if len([]rune(w)) >= 3 {
			long++
		}
	}
	if long < 2 {
		return fmt.Errorf("%w: full name must contain at least two words of three letters", domain.ErrValidation)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if in.CPF == "" {
		return fmt.Errorf("%w: cpf is required", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must have at least 6 characters", domain.ErrValidation)
	}
	if len(in.DeliveryAddresses) == 0 {
		return fmt.Errorf("%w: at least one delivery address is required", domain.ErrValidation)
	}
	return nil
}

func (s *CustomerService) resolveAddress(ctx context.Context, customerID string, in AddressInput) (*domain.Address, error) {
	looked, err := s.cep.Lookup(ctx, in.CEP)
	if err != nil {
		return nil, err
	}
	return &domain.Address{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		CEP:        looked.CEP,
		Street:     looked.Street,
		District:   looked.District,
		City:       looked.City,
		State:      looked.State,
		Number:     in.Number,
		Complement: in.Complement,
	}, nil
}

// AddDeliveryAddress appends an address to the caller's book. Marking it as
// default clears the previous default.
func (s *CustomerService) AddDeliveryAddress(ctx context.Context, callerEmail string, in AddressInput) (*domain.Address, error) {
	customer, err := s.customers.GetByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	addr, err := s.resolveAddress(ctx, customer.ID, in)
	if err != nil {
		return nil, err
	}
	addr.Default = in.Default
	if err := s.customers.AddAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// CheckoutAddresses lists the caller's delivery addresses for the checkout
// page. An empty book is a checkout precondition failure, not an empty page.
func (s *CustomerService) CheckoutAddresses(ctx context.Context, callerEmail string) ([]domain.Address, error) {
	customer, err := s.customers.GetByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	addrs, err := s.customers.ListDeliveryAddresses(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: a delivery address is required before checkout", domain.ErrValidation)
	}
	return addrs, nil
}
