package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caiobtc/velocompra-backend/internal/adapter/http/middleware"
	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type CustomerHandler struct {
	customers *usecase.CustomerService
}

func NewCustomerHandler(customers *usecase.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type addressReq struct {
	CEP        string `json:"cep" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Complement string `json:"complement"`
	Default    bool   `json:"default"`
}

type registerReq struct {
	FullName          string       `json:"fullName" binding:"required"`
	Email             string       `json:"email" binding:"required,email"`
	CPF               string       `json:"cpf" binding:"required"`
	BirthDate         string       `json:"birthDate" binding:"required"` // YYYY-MM-DD
	Gender            string       `json:"gender" binding:"required"`
	Password          string       `json:"password" binding:"required"`
	BillingAddress    addressReq   `json:"billingAddress" binding:"required"`
	DeliveryAddresses []addressReq `json:"deliveryAddresses" binding:"required,min=1,dive"`
}

func (h *CustomerHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
		return
	}

	in := usecase.RegisterCustomerInput{
		FullName:       req.FullName,
		Email:          req.Email,
		CPF:            req.CPF,
		BirthDate:      birth,
		Gender:         req.Gender,
		Password:       req.Password,
		BillingAddress: toAddressInput(req.BillingAddress),
	}
	for _, a := range req.DeliveryAddresses {
		in.DeliveryAddresses = append(in.DeliveryAddresses, toAddressInput(a))
	}

	if err := h.customers.Register(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func toAddressInput(a addressReq) usecase.AddressInput {
	return usecase.AddressInput{
		CEP:        a.CEP,
		Number:     a.Number,
		Complement: a.Complement,
		Default:    a.Default,
	}
}

func (h *CustomerHandler) AddAddress(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	addr, err := h.customers.AddDeliveryAddress(c.Request.Context(), middleware.Email(c), toAddressInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResp(*addr))
}

// Checkout returns the caller's delivery addresses for the checkout page.
func (h *CustomerHandler) Checkout(c *gin.Context) {
	addrs, err := h.customers.CheckoutAddresses(c.Request.Context(), middleware.Email(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]checkoutAddressResp, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, toAddressResp(a))
	}
	c.JSON(http.StatusOK, out)
}

type checkoutAddressResp struct {
	ID      string `json:"id"`
	Default bool   `json:"default"`
	addressResp
}

func toAddressResp(a domain.Address) checkoutAddressResp {
	return checkoutAddressResp{
		ID:      a.ID,
		Default: a.Default,
		addressResp: addressResp{
			CEP:        a.CEP,
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			District:   a.District,
			City:       a.City,
			State:      a.State,
		},
	}
}
