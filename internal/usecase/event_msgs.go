package usecase

import "time"

// OrderCreatedMsg is published to the broker after a successful checkout.
type OrderCreatedMsg struct {
	OrderNumber string    `json:"orderNumber"`
	CustomerID  string    `json:"customerId"`
	TotalCents  int64     `json:"totalCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PaymentStatusMsg arrives on Kafka from the payment flow.
type PaymentStatusMsg struct {
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"` // "SUCCESS" | "REJECTED"
}
