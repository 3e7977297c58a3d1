package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateOwnerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,min=5,max=30"`
	Username string `json:"username" validate:"required,min=1,max=150"`
	Password string `json:"password" validate:"required,min=4"`
}

type UpdateOwnerRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Phone    *string `json:"phone"    validate:"omitempty,min=5,max=30"`
	Password *string `json:"password" validate:"omitempty,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OwnerResponse never carries the password hash.
type OwnerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
}
