package usecase

import (
	"context"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

// Ports stay out of the domain package; adapters implement them.

type OrderRepo interface {
	// Create persists the order and its items as a single unit. The repo
	// allocates the order number inside the same transaction and fills
	// o.Number before returning.
	Create(ctx context.Context, o *domain.Order) error
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	// ListByCustomer returns the customer's orders newest-first, without items.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	// ListAll returns every order newest-first, without items.
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatusIf overwrites the status only when the stored status still
	// matches from; returns false when nothing matched.
	UpdateStatusIf(ctx context.Context, number string, from, to domain.Status) (bool, error)
}

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer, addresses []domain.Address) error
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error)
	// AddressByID resolves an address scoped to its owning customer.
	AddressByID(ctx context.Context, customerID, addressID string) (*domain.Address, error)
	ListDeliveryAddresses(ctx context.Context, customerID string) ([]domain.Address, error)
	AddAddress(ctx context.Context, a *domain.Address) error
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetStock(ctx context.Context, id string, stock int) error
}

type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all staff accounts, optionally filtered by a
	// case-insensitive name fragment.
	List(ctx context.Context, nameFilter string) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
}

// CEPLookup resolves a postal code to address fields.
type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (*domain.Address, error)
}

// IdempotencyStore guards checkout against duplicate submissions.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	// Release frees a lock taken by TryLock so a failed checkout can be
	// retried with the same key before the TTL runs out.
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// OrderEvents publishes order lifecycle events; failures are logged, never
// surfaced to the caller.
type OrderEvents interface {
	PublishCreated(ctx context.Context, msg OrderCreatedMsg) error
}
