package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "PED00001", domain.FormatOrderNumber(1))
	assert.Equal(t, "PED00042", domain.FormatOrderNumber(42))
	assert.Equal(t, "PED99999", domain.FormatOrderNumber(99999))
	// no truncation past five digits
	assert.Equal(t, "PED100000", domain.FormatOrderNumber(100000))
}

func validOrder() *domain.Order {
	o := &domain.Order{
		ID:                "o-1",
		CustomerID:        "c-1",
		DeliveryAddressID: "a-1",
		PaymentMethod:     "PIX",
		ShippingCents:     1500,
		Items: []domain.OrderItem{
			{ProductID: "p-1", Quantity: 2, UnitPriceCents: 5000},
			{ProductID: "p-2", Quantity: 1, UnitPriceCents: 10000},
		},
	}
	o.TotalCents = o.ItemsTotalCents() + o.ShippingCents
	return o
}

func TestOrderTotals(t *testing.T) {
	o := validOrder()
	assert.Equal(t, int64(20000), o.ItemsTotalCents())
	assert.Equal(t, int64(21500), o.TotalCents)
	assert.Equal(t, int64(10000), o.Items[0].LineTotalCents())
}

func TestOrderValidate(t *testing.T) {
	require.NoError(t, validOrder().Validate())

	o := validOrder()
	o.Items = nil
	o.TotalCents = o.ShippingCents
	require.ErrorIs(t, o.Validate(), domain.ErrValidation)

	o = validOrder()
	o.Items[0].Quantity = 0
	require.ErrorIs(t, o.Validate(), domain.ErrValidation)

	o = validOrder()
	o.Items[0].UnitPriceCents = -1
	require.ErrorIs(t, o.Validate(), domain.ErrValidation)

	o = validOrder()
	o.ShippingCents = -1
	require.ErrorIs(t, o.Validate(), domain.ErrValidation)

	o = validOrder()
	o.TotalCents += 1
	require.ErrorIs(t, o.Validate(), domain.ErrValidation)

	o = validOrder()
	o.DeliveryAddressID = ""
	require.ErrorIs(t, o.Validate(), domain.ErrValidation)
}
