package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// CEPHandler exposes the postal-code lookup used by registration forms.
type CEPHandler struct {
	lookup usecase.CEPLookup
}

func NewCEPHandler(lookup usecase.CEPLookup) *CEPHandler {
	return &CEPHandler{lookup: lookup}
}

func (h *CEPHandler) Lookup(c *gin.Context) {
	addr, err := h.lookup.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addressResp{
		CEP:      addr.CEP,
		Street:   addr.Street,
		District: addr.District,
		City:     addr.City,
		State:    addr.State,
	})
}
