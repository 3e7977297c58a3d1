package handler

import (
	"net/http"

	"wonkepos/internal/dto"
	"wonkepos/internal/service"

	"github.com/gin-gonic/gin"
)

type ShopsHandler struct {
	svc      service.ShopService
	staff    service.StaffService
	products service.ProductService
	sales    service.SaleService
}

func NewShopsHandler(
	svc service.ShopService,
	staff service.StaffService,
	products service.ProductService,
	sales service.SaleService,
) *ShopsHandler {
	return &ShopsHandler{svc: svc, staff: staff, products: products, sales: sales}
}

func (h *ShopsHandler) Create(c *gin.Context) {
	var req dto.CreateShopRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ShopsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateShopRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStaff answers GET /api/shops/:id/staff.
func (h *ShopsHandler) ListStaff(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.staff.ListByShop(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProducts answers GET /api/shops/:id/products.
func (h *ShopsHandler) ListProducts(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.products.ListByShop(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSales answers GET /api/shops/:id/sales.
func (h *ShopsHandler) ListSales(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.sales.ListByShop(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout answers POST /api/shops/:id/checkout: the whole cart is applied
// in one transaction server-side.
func (h *ShopsHandler) Checkout(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.Checkout(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GRV answers POST /api/shops/:id/grv: goods received from a supplier.
func (h *ShopsHandler) GRV(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.GRVRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.ProcessGRV(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
