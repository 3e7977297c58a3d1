package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UoMPayload mirrors model.UoM on the wire. Level-1 multiplier is forced to 1
// by the service regardless of what the client sends.
type UoMPayload struct {
	Level      int             `json:"level"      validate:"required,min=1,max=4"`
	Name       string          `json:"name"       validate:"required,min=1,max=60"`
	Multiplier int             `json:"multiplier" validate:"required,min=1"`
	Barcode    string          `json:"barcode"    validate:"required,min=1,max=32"`
	Price      decimal.Decimal `json:"price"      validate:"required"`
}

type CreateProductRequest struct {
	ShopID            string          `json:"shopId"            validate:"required,uuid"`
	Name              string          `json:"name"              validate:"required,min=1,max=120"`
	Category          string          `json:"category"          validate:"required"`
	CostPrice         decimal.Decimal `json:"costPrice"         validate:"min=0"`
	StockQuantity     int             `json:"stockQuantity"     validate:"min=0"`
	LowStockThreshold int             `json:"lowStockThreshold" validate:"min=0"`
	UoMs              []UoMPayload    `json:"uoms"              validate:"required,min=1,max=4,dive"`
}

type UpdateProductRequest struct {
	Name              *string          `json:"name"              validate:"omitempty,min=1,max=120"`
	Category          *string          `json:"category"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	StockQuantity     *int             `json:"stockQuantity"     validate:"omitempty,min=0"`
	LowStockThreshold *int             `json:"lowStockThreshold" validate:"omitempty,min=0"`
	UoMs              *[]UoMPayload    `json:"uoms"              validate:"omitempty,min=1,max=4,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID                string          `json:"id"`
	ShopID            string          `json:"shopId"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	UoMs              []UoMPayload    `json:"uoms"`
}

// PriceLookupResponse is returned by the public barcode price check.
type PriceLookupResponse struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	UoMName       string          `json:"uomName"`
	UoMLevel      int             `json:"uomLevel"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}
