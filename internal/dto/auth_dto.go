package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OwnerLoginResponse is the matched owner, flattened, plus a bearer token.
// The token is additive: clients that ignore it keep working.
type OwnerLoginResponse struct {
	OwnerResponse
	Token string `json:"token,omitempty"`
}

// StaffLoginResponse carries the staff member and its owning shop. The shop
// is included so clients can bind the active-shop context in one round trip.
type StaffLoginResponse struct {
	Staff StaffResponse `json:"staff"`
	Shop  ShopResponse  `json:"shop"`
	Token string        `json:"token,omitempty"`
}
