package domain

import (
	"fmt"
	"time"
)

// OrderNumberPrefix tags every human-facing order number.
const OrderNumberPrefix = "PED"

// FormatOrderNumber renders an allocated sequence value as the human-facing
// order number. Pure function of the integer; uniqueness comes from the
// allocator.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%05d", OrderNumberPrefix, seq)
}

// OrderItem is one product/quantity/price triple within an order. The unit
// price is captured at order time and never re-read from the catalog, so
// historical orders stay stable when prices change.
type OrderItem struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

// LineTotalCents is quantity times the frozen unit price.
func (it OrderItem) LineTotalCents() int64 {
	return int64(it.Quantity) * it.UnitPriceCents
}

// Order is a customer's finalized checkout request. Lines and totals are
// computed exactly once at creation; afterwards only the status changes.
type Order struct {
	ID                string
	Number            string
	CustomerID        string
	DeliveryAddressID string
	PaymentMethod     string
	ShippingCents     int64
	TotalCents        int64
	Status            Status
	Items             []OrderItem
	CreatedAt         time.Time
}

// ItemsTotalCents sums the line totals, excluding shipping.
func (o *Order) ItemsTotalCents() int64 {
	var sum int64
	for _, it := range o.Items {
		sum += it.LineTotalCents()
	}
	return sum
}

// Validate checks the aggregate invariants before persistence.
func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return fmt.Errorf("%w: customer is required", ErrValidation)
	}
	if o.DeliveryAddressID == "" {
		return fmt.Errorf("%w: delivery address is required", ErrValidation)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if it.UnitPriceCents < 0 {
			return fmt.Errorf("%w: unit price must be non-negative", ErrValidation)
		}
	}
	if o.ShippingCents < 0 {
		return fmt.Errorf("%w: shipping cost must be non-negative", ErrValidation)
	}
	if o.TotalCents != o.ItemsTotalCents()+o.ShippingCents {
		return fmt.Errorf("%w: total does not match items plus shipping", ErrValidation)
	}
	return nil
}
