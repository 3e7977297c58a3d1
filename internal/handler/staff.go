package handler

import (
	"fmt"
	"net/http"

	"wonkepos/internal/dto"
	"wonkepos/internal/infra"
	"wonkepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffHandler struct {
	svc   service.StaffService
	sales service.SaleService
	shops service.ShopService
}

func NewStaffHandler(svc service.StaffService, sales service.SaleService, shops service.ShopService) *StaffHandler {
	return &StaffHandler{svc: svc, sales: sales, shops: shops}
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
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

func (h *StaffHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) Get(c *gin.Context) {
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

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateStaffRequest
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

func (h *StaffHandler) Delete(c *gin.Context) {
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

// ListSales answers GET /api/staff/:id/sales.
func (h *StaffHandler) ListSales(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.sales.ListByStaff(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CashOut answers POST /api/staff/:id/cash-out. Flips every open sale to
// cashed_out; calling it again is a no-op success.
func (h *StaffHandler) CashOut(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.sales.CashOut(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DayEnd answers GET /api/staff/:id/day-end with the aggregated summary.
func (h *StaffHandler) DayEnd(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.sales.DayEndSummary(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DayEndReport answers GET /api/staff/:id/day-end/report with a rendered
// PDF of the same summary.
func (h *StaffHandler) DayEndReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	member, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	summary, err := h.sales.DayEndSummary(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	shopName := "Wonke POS"
	if shopID, err := uuid.Parse(member.ShopID); err == nil {
		if shop, err := h.shops.Get(c.Request.Context(), shopID); err == nil {
			shopName = shop.Name
		}
	}

	pdf, err := infra.GenerateDayEndPDF(shopName, summary)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=day-end-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
