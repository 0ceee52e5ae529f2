package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

const (
	aliceEmail = "alice@example.com"
	bobEmail   = "bob@example.com"
)

type orderFixture struct {
	orders    *fakeOrderRepo
	customers *fakeCustomerRepo
	products  *fakeProductRepo
	idem      *fakeIdemStore
	events    *fakeEvents
	svc       *usecase.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	customers := newFakeCustomerRepo()
	customers.customers[aliceEmail] = &domain.Customer{ID: "cust-alice", FullName: "Alice Lima", Email: aliceEmail}
	customers.customers[bobEmail] = &domain.Customer{ID: "cust-bob", FullName: "Bob Souza", Email: bobEmail}
	customers.addresses["addr-alice"] = &domain.Address{
		ID: "addr-alice", CustomerID: "cust-alice",
		CEP: "01310100", Street: "Avenida Paulista", Number: "1000",
		District: "Bela Vista", City: "Sao Paulo", State: "SP",
	}
	customers.addresses["addr-bob"] = &domain.Address{ID: "addr-bob", CustomerID: "cust-bob", CEP: "20040030"}

	products := newFakeProductRepo(
		&domain.Product{ID: "prod-keyboard", Name: "Teclado", Description: "Teclado mecanico", PriceCents: 5000, Stock: 10, Active: true, DefaultImage: "kb.jpg"},
		&domain.Product{ID: "prod-mouse", Name: "Mouse", Description: "Mouse sem fio", PriceCents: 10000, Stock: 5, Active: true},
	)

	f := &orderFixture{
		orders:    &fakeOrderRepo{},
		customers: customers,
		products:  products,
		idem:      newFakeIdemStore(),
		events:    &fakeEvents{},
	}
	f.svc = usecase.NewOrderService(f.orders, f.customers, f.products, f.idem, f.events)
	return f
}

func checkoutInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		DeliveryAddressID: "addr-alice",
		PaymentMethod:     "PIX",
		ShippingCents:     1500,
		Items: []usecase.CreateOrderItemInput{
			{ProductID: "prod-keyboard", Quantity: 2, UnitPriceCents: 5000},
			{ProductID: "prod-mouse", Quantity: 1, UnitPriceCents: 10000},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)

	out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	// 2 x 50.00 + 1 x 100.00 + 15.00 shipping = 215.00
	assert.Equal(t, int64(21500), out.TotalCents)
	assert.Equal(t, "PED00001", out.OrderNumber)

	stored, err := f.orders.GetByNumber(context.Background(), out.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAwaitingPayment, stored.Status)
	assert.Equal(t, "cust-alice", stored.CustomerID)
	assert.Len(t, stored.Items, 2)

	require.Len(t, f.events.published, 1)
	assert.Equal(t, out.OrderNumber, f.events.published[0].OrderNumber)
}

func TestCreateOrderFreezesRequestPrice(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.Items = []usecase.CreateOrderItemInput{
		// catalog says 5000, checkout showed a promotional 4200
		{ProductID: "prod-keyboard", Quantity: 1, UnitPriceCents: 4200},
	}
	out, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(4200+1500), out.TotalCents)

	stored, err := f.orders.GetByNumber(context.Background(), out.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(4200), stored.Items[0].UnitPriceCents)
}

func TestCreateOrderUnknownProductPersistsNothing(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.Items = append(in.Items, usecase.CreateOrderItemInput{ProductID: "prod-ghost", Quantity: 1, UnitPriceCents: 100})

	_, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.events.published)
}

func TestCreateOrderForeignAddressRejected(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.DeliveryAddressID = "addr-bob"
	_, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderZeroQuantityRejected(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.Items[0].Quantity = 0
	_, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateOrderIdempotencyReplay(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.IdempotencyKey = "key-123"

	first, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.NoError(t, err)

	second, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.NoError(t, err)

	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.Equal(t, first.TotalCents, second.TotalCents)
	assert.Len(t, f.orders.orders, 1)
}

func TestCreateOrderFailureReleasesIdempotencyKey(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.IdempotencyKey = "key-retry"
	in.Items = append(in.Items, usecase.CreateOrderItemInput{ProductID: "prod-ghost", Quantity: 1, UnitPriceCents: 100})

	_, err := f.svc.Create(context.Background(), in, aliceEmail)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	// the failed attempt must not hold the key for the lock TTL
	retry := checkoutInput()
	retry.IdempotencyKey = "key-retry"
	out, err := f.svc.Create(context.Background(), retry, aliceEmail)
	require.NoError(t, err)
	assert.Equal(t, "PED00001", out.OrderNumber)
	assert.Len(t, f.orders.orders, 1)
}

func TestCreateOrderPublishFailureDoesNotFailCheckout(t *testing.T) {
	f := newOrderFixture(t)
	f.events.fail = fmt.Errorf("broker down")

	out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)
	assert.NotEmpty(t, out.OrderNumber)
}

func TestConcurrentCreatesAllocateDistinctNumbers(t *testing.T) {
	f := newOrderFixture(t)

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
			if err == nil {
				numbers <- out.OrderNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.Falsef(t, seen[num], "duplicate order number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestListMineNewestFirstAndScoped(t *testing.T) {
	f := newOrderFixture(t)

	first, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	bobIn := checkoutInput()
	bobIn.DeliveryAddressID = "addr-bob"
	_, err = f.svc.Create(context.Background(), bobIn, bobEmail)
	require.NoError(t, err)

	mine, err := f.svc.ListMine(context.Background(), aliceEmail)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.OrderNumber, mine[0].OrderNumber)
	assert.Equal(t, first.OrderNumber, mine[1].OrderNumber)

	all, err := f.svc.AdminList(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDetail(t *testing.T) {
	f := newOrderFixture(t)

	out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	detail, err := f.svc.Detail(context.Background(), out.OrderNumber, aliceEmail)
	require.NoError(t, err)

	assert.Equal(t, out.OrderNumber, detail.OrderNumber)
	assert.Equal(t, int64(21500), detail.TotalCents)
	assert.Equal(t, "Avenida Paulista", detail.DeliveryAddress.Street)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "Teclado", detail.Items[0].ProductName)
	assert.Equal(t, "kb.jpg", detail.Items[0].ProductImage)
	assert.Equal(t, int64(10000), detail.Items[0].LineTotalCents)
}

func TestDetailForeignOrderDenied(t *testing.T) {
	f := newOrderFixture(t)

	out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	_, err = f.svc.Detail(context.Background(), out.OrderNumber, bobEmail)
	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestDetailUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Detail(context.Background(), "PED99999", aliceEmail)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderFixture(t)

	out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), out.OrderNumber, domain.StatusPaymentSucceeded))
	require.NoError(t, f.svc.UpdateStatus(context.Background(), out.OrderNumber, domain.StatusInTransit))
	require.NoError(t, f.svc.UpdateStatus(context.Background(), out.OrderNumber, domain.StatusDelivered))

	stored, err := f.orders.GetByNumber(context.Background(), out.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, stored.Status)
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	f := newOrderFixture(t)

	out, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	err = f.svc.UpdateStatus(context.Background(), out.OrderNumber, domain.StatusDelivered)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// terminal orders stay frozen
	require.NoError(t, f.svc.UpdateStatus(context.Background(), out.OrderNumber, domain.StatusCancelled))
	err = f.svc.UpdateStatus(context.Background(), out.OrderNumber, domain.StatusPaymentSucceeded)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)

	err := f.svc.UpdateStatus(context.Background(), "PED00404", domain.StatusCancelled)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSummaryCarriesCreatedAt(t *testing.T) {
	f := newOrderFixture(t)

	before := time.Now().UTC().Add(-time.Second)
	_, err := f.svc.Create(context.Background(), checkoutInput(), aliceEmail)
	require.NoError(t, err)

	mine, err := f.svc.ListMine(context.Background(), aliceEmail)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].CreatedAt.After(before))
	assert.Equal(t, domain.StatusAwaitingPayment, mine[0].Status)
}
