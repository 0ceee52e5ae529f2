package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// In-memory port implementations shared by the service tests. The order repo
// mirrors the production one's contract: number allocation happens inside
// Create, atomically with the insert.

type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    int64
	orders []*domain.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	o.Number = domain.FormatOrderNumber(r.seq)
	cp := *o
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.Number == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].CustomerID == customerID {
			out = append(out, *r.orders[i])
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, *r.orders[i])
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatusIf(_ context.Context, number string, from, to domain.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.Number == number && o.Status == from {
			o.Status = to
			return true, nil
		}
	}
	return false, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer // keyed by email
	addresses map[string]*domain.Address  // keyed by id
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: map[string]*domain.Customer{},
		addresses: map[string]*domain.Address{},
	}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer, addresses []domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.Email] = c
	for i := range addresses {
		a := addresses[i]
		r.addresses[a.ID] = &a
	}
	return nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[email]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) ExistsByEmailOrCPF(_ context.Context, email, cpf string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email || c.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) AddressByID(_ context.Context, customerID, addressID string) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[addressID]
	if !ok || a.CustomerID != customerID {
		return nil, domain.ErrAddressNotFound
	}
	return a, nil
}

func (r *fakeCustomerRepo) ListDeliveryAddresses(_ context.Context, customerID string) ([]domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Address
	for _, a := range r.addresses {
		if a.CustomerID == customerID && !a.Billing {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) AddAddress(_ context.Context, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.Default {
		for _, prev := range r.addresses {
			if prev.CustomerID == a.CustomerID {
				prev.Default = false
			}
		}
	}
	cp := *a
	r.addresses[a.ID] = &cp
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.Active = active
	}
	return nil
}

func (r *fakeProductRepo) SetStock(_ context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, nameFilter string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if nameFilter == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(nameFilter)) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

type fakeIdemStore struct {
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locks: map[string]bool{}, values: map[string]string{}}
}

func (s *fakeIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + "/" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *fakeIdemStore) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, scope+"/"+key)
	return nil
}

func (s *fakeIdemStore) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope+"/"+key] = value
	return nil
}

func (s *fakeIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+"/"+key]
	return v, ok, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	published []usecase.OrderCreatedMsg
	fail      error
}

func (e *fakeEvents) PublishCreated(_ context.Context, msg usecase.OrderCreatedMsg) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail != nil {
		return e.fail
	}
	e.published = append(e.published, msg)
	return nil
}

// fakeCEP resolves any 8-digit code to a fixed street; unknown codes fail the
// same way the real client does.
type fakeCEP struct {
	known map[string]domain.Address
}

func (c *fakeCEP) Lookup(_ context.Context, cep string) (*domain.Address, error) {
	if a, ok := c.known[cep]; ok {
		cp := a
		return &cp, nil
	}
	return nil, domain.ErrAddressNotFound
}
