package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateStaffRequest struct {
	ShopID   string `json:"shopId"   validate:"required,uuid"`
	Name     string `json:"name"     validate:"required,min=2,max=120"`
	Role     string `json:"role"     validate:"required,oneof=supervisor cashier"`
	Username string `json:"username" validate:"required,min=1,max=150"`
	Password string `json:"password" validate:"required,min=4"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=120"`
	Role     *string `json:"role"     validate:"omitempty,oneof=supervisor cashier"`
	Password *string `json:"password" validate:"omitempty,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StaffResponse struct {
	ID       string `json:"id"`
	ShopID   string `json:"shopId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Username string `json:"username"`
}
