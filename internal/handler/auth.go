package handler

import (
	"net/http"

	"wonkepos/internal/dto"
	"wonkepos/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// OwnerLogin answers POST /api/auth/owner-login.
func (h *AuthHandler) OwnerLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.OwnerLogin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StaffLogin answers POST /api/auth/staff-login. An expired shop license is
// a 403 with code "license_expired" regardless of whether the password was
// correct.
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.StaffLogin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
