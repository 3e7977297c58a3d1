package handler

import (
	"net/http"

	"wonkepos/internal/apierror"
	"wonkepos/internal/service"

	"github.com/gin-gonic/gin"
)

type PricesHandler struct{ svc service.ProductService }

func NewPricesHandler(svc service.ProductService) *PricesHandler {
	return &PricesHandler{svc: svc}
}

// Lookup answers GET /api/price/:barcode — the price-check station query.
// Any UoM tier barcode resolves to that tier's price.
func (h *PricesHandler) Lookup(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Barcode required"))
		return
	}
	resp, err := h.svc.PriceLookup(c.Request.Context(), barcode)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
