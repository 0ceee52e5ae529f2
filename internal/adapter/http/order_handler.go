package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caiobtc/velocompra-backend/internal/adapter/http/middleware"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type OrderHandler struct {
	orders *usecase.OrderService
}

func NewOrderHandler(orders *usecase.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	// No required tag: a zero unit price is legal (free item, full promo)
	// and required rejects the zero value.
	UnitPriceCents int64 `json:"unitPriceCents" binding:"gte=0"`
}

type createOrderReq struct {
	DeliveryAddressID string               `json:"deliveryAddressId" binding:"required"`
	PaymentMethod     string               `json:"paymentMethod" binding:"required"`
	ShippingCents     int64                `json:"shippingCents" binding:"gte=0"`
	Items             []createOrderItemReq `json:"items" binding:"required,min=1,dive"`
}

type createOrderResp struct {
	OrderNumber string `json:"orderNumber"`
	TotalCents  int64  `json:"totalCents"`
}

// Create translates the checkout request into the use case input. The caller
// identity comes from the token, never the body.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	in := usecase.CreateOrderInput{
		DeliveryAddressID: req.DeliveryAddressID,
		PaymentMethod:     req.PaymentMethod,
		ShippingCents:     req.ShippingCents,
		IdempotencyKey:    c.GetHeader("X-Idempotency-Key"),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.CreateOrderItemInput{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.orders.Create(ctx, in, middleware.Email(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createOrderResp{OrderNumber: out.OrderNumber, TotalCents: out.TotalCents})
}

type orderSummaryResp struct {
	OrderNumber string    `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	TotalCents  int64     `json:"totalCents"`
	Status      string    `json:"status"`
}

// ListMine returns the caller's orders, newest first.
func (h *OrderHandler) ListMine(c *gin.Context) {
	summaries, err := h.orders.ListMine(c.Request.Context(), middleware.Email(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryResp(summaries))
}

func toSummaryResp(summaries []usecase.OrderSummary) []orderSummaryResp {
	out := make([]orderSummaryResp, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, orderSummaryResp{
			OrderNumber: s.OrderNumber,
			CreatedAt:   s.CreatedAt,
			TotalCents:  s.TotalCents,
			Status:      string(s.Status),
		})
	}
	return out
}

type orderItemResp struct {
	ProductName    string `json:"productName"`
	ProductImage   string `json:"productImage"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	LineTotalCents int64  `json:"lineTotalCents"`
}

type addressResp struct {
	CEP        string `json:"cep"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

type orderDetailResp struct {
	OrderNumber     string          `json:"orderNumber"`
	CreatedAt       time.Time       `json:"createdAt"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingCents   int64           `json:"shippingCents"`
	TotalCents      int64           `json:"totalCents"`
	Status          string          `json:"status"`
	DeliveryAddress addressResp     `json:"deliveryAddress"`
	Items           []orderItemResp `json:"items"`
}

// Detail returns one order; 404 when unknown, 403 when owned by someone else.
func (h *OrderHandler) Detail(c *gin.Context) {
	detail, err := h.orders.Detail(c.Request.Context(), c.Param("orderNumber"), middleware.Email(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := orderDetailResp{
		OrderNumber:   detail.OrderNumber,
		CreatedAt:     detail.CreatedAt,
		PaymentMethod: detail.PaymentMethod,
		ShippingCents: detail.ShippingCents,
		TotalCents:    detail.TotalCents,
		Status:        string(detail.Status),
		DeliveryAddress: addressResp{
			CEP:        detail.DeliveryAddress.CEP,
			Street:     detail.DeliveryAddress.Street,
			Number:     detail.DeliveryAddress.Number,
			Complement: detail.DeliveryAddress.Complement,
			District:   detail.DeliveryAddress.District,
			City:       detail.DeliveryAddress.City,
			State:      detail.DeliveryAddress.State,
		},
	}
	for _, it := range detail.Items {
		resp.Items = append(resp.Items, orderItemResp{
			ProductName:    it.ProductName,
			ProductImage:   it.ProductImage,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			LineTotalCents: it.LineTotalCents,
		})
	}
	c.JSON(http.StatusOK, resp)
}
