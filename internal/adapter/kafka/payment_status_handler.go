package kafka

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// StatusUpdater is the slice of OrderService the handler needs.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderNumber string, next domain.Status) error
}

// PaymentStatusHandler applies payment outcomes from the payment flow to the
// order lifecycle. The same transition rules apply as for the admin API.
type PaymentStatusHandler struct {
	orders StatusUpdater
	log    *slog.Logger
}

func NewPaymentStatusHandler(orders StatusUpdater, log *slog.Logger) *PaymentStatusHandler {
	return &PaymentStatusHandler{orders: orders, log: log}
}

func (h *PaymentStatusHandler) Handle(ctx context.Context, ev usecase.PaymentStatusMsg) error {
	var next domain.Status
	switch ev.Status {
	case "SUCCESS":
		next = domain.StatusPaymentSucceeded
	case "REJECTED":
		next = domain.StatusPaymentRejected
	default:
		// An unknown outcome must not reject a payment. Drop it and leave
		// the order awaiting payment.
		h.log.Warn("unknown payment status", "order", ev.OrderNumber, "status", ev.Status)
		return nil
	}

	err := h.orders.UpdateStatus(ctx, ev.OrderNumber, next)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrInvalidTransition):
		// Retrying cannot fix either; drop the event.
		h.log.Warn("payment event dropped", "order", ev.OrderNumber, "err", err)
		return nil
	default:
		return err
	}
}
