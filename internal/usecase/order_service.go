package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/logging"
)

// OrderService orchestrates the order lifecycle: checkout, listings, detail
// and status transitions. Ownership and role checks happen here, not in the
// handlers.
type OrderService struct {
	orders    OrderRepo
	customers CustomerRepo
	products  ProductRepo
	idem      IdempotencyStore // optional
	events    OrderEvents      // optional
}

func NewOrderService(orders OrderRepo, customers CustomerRepo, products ProductRepo, idem IdempotencyStore, events OrderEvents) *OrderService {
	return &OrderService{orders: orders, customers: customers, products: products, idem: idem, events: events}
}

type CreateOrderItemInput struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

type CreateOrderInput struct {
	DeliveryAddressID string
	PaymentMethod     string
	ShippingCents     int64
	Items             []CreateOrderItemInput
	IdempotencyKey    string // optional
}

type CreateOrderOutput struct {
	OrderNumber string
	TotalCents  int64
}

// Create turns a checkout request into a persisted order. All referenced
// entities must resolve; any miss fails the whole creation with nothing
// persisted.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput, callerEmail string) (CreateOrderOutput, error) {
	customer, err := s.customers.GetByEmail(ctx, callerEmail)
	if err != nil {
		return CreateOrderOutput{}, err
	}

	locked := false
	if s.idem != nil && in.IdempotencyKey != "" {
		if number, ok, _ := s.idem.Recall(ctx, customer.ID, in.IdempotencyKey); ok {
			prev, err := s.orders.GetByNumber(ctx, number)
			if err != nil {
				return CreateOrderOutput{}, err
			}
			return CreateOrderOutput{OrderNumber: prev.Number, TotalCents: prev.TotalCents}, nil
		}
		if ok, err := s.idem.TryLock(ctx, customer.ID, in.IdempotencyKey); err == nil {
			if !ok {
				return CreateOrderOutput{}, fmt.Errorf("%w: duplicate checkout submission", domain.ErrValidation)
			}
			locked = true
		}
	}

	// A failed checkout must not pin the idempotency key until the TTL runs
	// out; an honest retry with the same key has to be able to go through.
	fail := func(err error) (CreateOrderOutput, error) {
		if locked {
			_ = s.idem.Release(ctx, customer.ID, in.IdempotencyKey)
		}
		return CreateOrderOutput{}, err
	}

	addr, err := s.customers.AddressByID(ctx, customer.ID, in.DeliveryAddressID)
	if err != nil {
		return fail(err)
	}

	order := &domain.Order{
		ID:                uuid.NewString(),
		CustomerID:        customer.ID,
		DeliveryAddressID: addr.ID,
		PaymentMethod:     in.PaymentMethod,
		ShippingCents:     in.ShippingCents,
		Status:            domain.StatusAwaitingPayment,
		CreatedAt:         time.Now().UTC(),
	}

	for _, it := range in.Items {
		priced, err := s.priceLine(ctx, it)
		if err != nil {
			return fail(err)
		}
		order.Items = append(order.Items, priced)
	}

	order.TotalCents = order.ItemsTotalCents() + order.ShippingCents
	if err := order.Validate(); err != nil {
		return fail(err)
	}

	// Number allocation and persistence are one transaction inside the repo.
	if err := s.orders.Create(ctx, order); err != nil {
		return fail(err)
	}

	if s.idem != nil && in.IdempotencyKey != "" {
		_ = s.idem.Remember(ctx, customer.ID, in.IdempotencyKey, order.Number)
	}
	if s.events != nil {
		msg := OrderCreatedMsg{
			OrderNumber: order.Number,
			CustomerID:  order.CustomerID,
			TotalCents:  order.TotalCents,
			CreatedAt:   order.CreatedAt,
		}
		if err := s.events.PublishCreated(ctx, msg); err != nil {
			logging.FromCtx(ctx).Warn("order.created publish failed", "order", order.Number, "err", err)
		}
	}

	return CreateOrderOutput{OrderNumber: order.Number, TotalCents: order.TotalCents}, nil
}

// priceLine resolves the product and freezes the caller-supplied unit price.
// The catalog price is deliberately not re-read here; the checkout flow is
// responsible for having shown the authoritative price.
func (s *OrderService) priceLine(ctx context.Context, in CreateOrderItemInput) (domain.OrderItem, error) {
	if in.Quantity <= 0 {
		return domain.OrderItem{}, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	return domain.OrderItem{
		ProductID:      product.ID,
		Quantity:       in.Quantity,
		UnitPriceCents: in.UnitPriceCents,
	}, nil
}

type OrderSummary struct {
	OrderNumber string
	CreatedAt   time.Time
	TotalCents  int64
	Status      domain.Status
}

// ListMine returns the caller's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, callerEmail string) ([]OrderSummary, error) {
	customer, err := s.customers.GetByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return summarize(orders), nil
}

// AdminList returns every order, newest first. Role gating happens at the
// router.
func (s *OrderService) AdminList(ctx context.Context) ([]OrderSummary, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(orders), nil
}

func summarize(orders []domain.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummary{
			OrderNumber: o.Number,
			CreatedAt:   o.CreatedAt,
			TotalCents:  o.TotalCents,
			Status:      o.Status,
		})
	}
	return out
}

type OrderItemView struct {
	ProductName    string
	ProductImage   string
	Quantity       int
	UnitPriceCents int64
	LineTotalCents int64
}

type AddressView struct {
	CEP        string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
}

type OrderDetail struct {
	OrderNumber     string
	CreatedAt       time.Time
	PaymentMethod   string
	ShippingCents   int64
	TotalCents      int64
	Status          domain.Status
	DeliveryAddress AddressView
	Items           []OrderItemView
}

// Detail resolves one order by number. The ownership check runs before any
// order data is assembled; a foreign order number yields ErrAccessDenied, not
// the data.
func (s *OrderService) Detail(ctx context.Context, number, callerEmail string) (*OrderDetail, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customer.ID {
		return nil, domain.ErrAccessDenied
	}

	addr, err := s.customers.AddressByID(ctx, order.CustomerID, order.DeliveryAddressID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{
		OrderNumber:   order.Number,
		CreatedAt:     order.CreatedAt,
		PaymentMethod: order.PaymentMethod,
		ShippingCents: order.ShippingCents,
		TotalCents:    order.TotalCents,
		Status:        order.Status,
		DeliveryAddress: AddressView{
			CEP:        addr.CEP,
			Street:     addr.Street,
			Number:     addr.Number,
			Complement: addr.Complement,
			District:   addr.District,
			City:       addr.City,
			State:      addr.State,
		},
	}

	for _, it := range order.Items {
		view := OrderItemView{
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			LineTotalCents: it.LineTotalCents(),
		}
		// Display name and image are read-only denormalization; a product
		// deactivated after purchase still renders.
		if product, err := s.products.GetByID(ctx, it.ProductID); err == nil {
			view.ProductName = product.Name
			view.ProductImage = product.DefaultImage
		}
		detail.Items = append(detail.Items, view)
	}

	return detail, nil
}

// UpdateStatus applies an externally triggered status transition. Invalid
// target values and illegal transitions are rejected; concurrent updates are
// last-write-wins once the transition check passes.
func (s *OrderService) UpdateStatus(ctx context.Context, number string, next domain.Status) error {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, next)
	}
	ok, err := s.orders.UpdateStatusIf(ctx, number, order.Status, next)
	if err != nil {
		return err
	}
	if !ok {
		// Someone moved the order between our read and write.
		return fmt.Errorf("%w: order %s changed concurrently", domain.ErrInvalidTransition, number)
	}
	logging.FromCtx(ctx).Info("order status updated", "order", number, "from", order.Status, "to", next)
	return nil
}
