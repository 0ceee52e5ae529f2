package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// OrderAdminHandler is the back-office view over orders: list everything,
// move statuses. Routes are gated by role at the router.
type OrderAdminHandler struct {
	orders *usecase.OrderService
}

func NewOrderAdminHandler(orders *usecase.OrderService) *OrderAdminHandler {
	return &OrderAdminHandler{orders: orders}
}

func (h *OrderAdminHandler) ListAll(c *gin.Context) {
	summaries, err := h.orders.AdminList(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryResp(summaries))
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderAdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderNumber"), status); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
