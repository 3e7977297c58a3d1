package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateShopRequest struct {
	OwnerID           string `json:"ownerId"           validate:"required,uuid"`
	Name              string `json:"name"              validate:"required,min=2,max=120"`
	Location          string `json:"location"          validate:"required"`
	LicenseStatus     string `json:"licenseStatus"     validate:"omitempty,oneof=active expired"`
	LicenseExpiryDate string `json:"licenseExpiryDate" validate:"required,datetime=2006-01-02"`
	LicensePlan       string `json:"licensePlan"       validate:"omitempty,oneof=basic pro enterprise"`
}

type UpdateShopRequest struct {
	Name              *string `json:"name"              validate:"omitempty,min=2,max=120"`
	Location          *string `json:"location"`
	LicenseStatus     *string `json:"licenseStatus"     validate:"omitempty,oneof=active expired"`
	LicenseExpiryDate *string `json:"licenseExpiryDate" validate:"omitempty,datetime=2006-01-02"`
	LicensePlan       *string `json:"licensePlan"       validate:"omitempty,oneof=basic pro enterprise"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ShopResponse uses the flat license fields of the storage schema; nesting
// into a license object is the client adapter's job.
type ShopResponse struct {
	ID                string `json:"id"`
	OwnerID           string `json:"ownerId"`
	Name              string `json:"name"`
	Location          string `json:"location"`
	LicenseStatus     string `json:"licenseStatus"`
	LicenseExpiryDate string `json:"licenseExpiryDate"`
	LicensePlan       string `json:"licensePlan"`
}
