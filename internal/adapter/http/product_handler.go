package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type ProductHandler struct {
	products *usecase.ProductService
}

func NewProductHandler(products *usecase.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productReq struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	PriceCents   int64    `json:"priceCents" binding:"required,gt=0"`
	Stock        int      `json:"stock" binding:"gte=0"`
	Images       []string `json:"images"`
	DefaultImage int      `json:"defaultImage"`
}

type productResp struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"priceCents"`
	Stock        int      `json:"stock"`
	Active       bool     `json:"active"`
	Images       []string `json:"images"`
	DefaultImage string   `json:"defaultImage"`
}

func toProductResp(p domain.Product) productResp {
	return productResp{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		Stock:        p.Stock,
		Active:       p.Active,
		Images:       p.Images,
		DefaultImage: p.DefaultImage,
	}
}

func toProductInput(req productReq) usecase.ProductInput {
	return usecase.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Stock:        req.Stock,
		Images:       req.Images,
		DefaultImage: req.DefaultImage,
	}
}

// ListActive is the public storefront catalog.
func (h *ProductHandler) ListActive(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]productResp, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResp(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	p, err := h.products.Create(c.Request.Context(), toProductInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResp(*p))
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	p, err := h.products.Update(c.Request.Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p))
}

func (h *ProductHandler) ToggleActive(c *gin.Context) {
	active, err := h.products.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

type stockReq struct {
	Stock *int `json:"stock" binding:"required"`
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	var req stockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if err := h.products.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
