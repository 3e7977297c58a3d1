package dto

import "github.com/shopspring/decimal"

// ─── Plain sale CRUD ─────────────────────────────────────────────────────────

// CreateSaleRequest is the plain POST /api/sales body. The atomic checkout
// endpoint is the preferred write path; this one exists for the documented
// CRUD surface and for data imports.
type CreateSaleRequest struct {
	ShopID        string          `json:"shopId"        validate:"required,uuid"`
	StaffID       string          `json:"staffId"       validate:"required,uuid"`
	StaffName     string          `json:"staffName"     validate:"required"`
	TotalAmount   decimal.Decimal `json:"totalAmount"   validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=cash card"`
	ItemsCount    int             `json:"itemsCount"    validate:"required,min=1"`
	Status        string          `json:"status"        validate:"omitempty,oneof=open cashed_out"`
}

type UpdateSaleRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=open cashed_out"`
}

type SaleResponse struct {
	ID            string          `json:"id"`
	ShopID        string          `json:"shopId"`
	StaffID       string          `json:"staffId"`
	StaffName     string          `json:"staffName"`
	Date          string          `json:"date"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	ItemsCount    int             `json:"itemsCount"`
	Status        string          `json:"status"`
}

// ─── Checkout ────────────────────────────────────────────────────────────────

// CheckoutLine is one cart line. Price is the UoM tier price captured at
// add-to-cart time; the server recomputes the subtotal as price × quantity.
type CheckoutLine struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	UoMLevel  int             `json:"uomLevel"  validate:"required,min=1,max=4"`
	Quantity  int             `json:"quantity"  validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"     validate:"required"`
}

// CheckoutRequest carries the whole cart so the server can apply stock
// decrements and the sale insert in a single transaction.
type CheckoutRequest struct {
	StaffID       string         `json:"staffId"       validate:"required,uuid"`
	StaffName     string         `json:"staffName"     validate:"required"`
	PaymentMethod string         `json:"paymentMethod" validate:"required,oneof=cash card"`
	Lines         []CheckoutLine `json:"lines"         validate:"required,min=1,dive"`
}

// CheckoutLineResult reports what happened to each line. StockApplied is
// false for stale lines (unknown product or UoM level) whose subtotal still
// counted toward the sale total.
type CheckoutLineResult struct {
	ProductID    string          `json:"productId"`
	StockApplied bool            `json:"stockApplied"`
	StockBefore  int             `json:"stockBefore"`
	StockAfter   int             `json:"stockAfter"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type CheckoutResponse struct {
	Sale  SaleResponse         `json:"sale"`
	Lines []CheckoutLineResult `json:"lines"`
}

// ─── Goods received (GRV) ────────────────────────────────────────────────────

type GRVItem struct {
	ProductID        string          `json:"productId"        validate:"required,uuid"`
	QuantityReceived int             `json:"quantityReceived" validate:"required,min=1"`
	NewCost          decimal.Decimal `json:"newCost"          validate:"required"`
}

type GRVRequest struct {
	Supplier      string    `json:"supplier"      validate:"required,min=1"`
	InvoiceNumber string    `json:"invoiceNumber" validate:"required,min=1"`
	Items         []GRVItem `json:"items"         validate:"required,min=1,dive"`
}

type GRVItemResult struct {
	ProductID  string          `json:"productId"`
	StockAfter int             `json:"stockAfter"`
	CostAfter  decimal.Decimal `json:"costAfter"`
	// CostDeltaPct is (new − old) / old × 100, one decimal; zero when the
	// previous cost was zero.
	CostDeltaPct decimal.Decimal `json:"costDeltaPct"`
}

type GRVResponse struct {
	Supplier      string          `json:"supplier"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Items         []GRVItemResult `json:"items"`
}

// ─── Day end ─────────────────────────────────────────────────────────────────

type CashOutResponse struct {
	StaffID   string `json:"staffId"`
	CashedOut int    `json:"cashedOut"` // number of sales flipped to cashed_out
}

// DayEndSummaryResponse aggregates a staff member's sales history.
// Settled means the open total is zero.
type DayEndSummaryResponse struct {
	StaffID          string          `json:"staffId"`
	StaffName        string          `json:"staffName"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	OpenTotal        decimal.Decimal `json:"openTotal"`
	OpenCash         decimal.Decimal `json:"openCash"`
	OpenCard         decimal.Decimal `json:"openCard"`
	TransactionCount int             `json:"transactionCount"`
	Settled          bool            `json:"settled"`
}
