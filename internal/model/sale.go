package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale lifecycle and payment constants.
const (
	SaleOpen      = "open"
	SaleCashedOut = "cashed_out"

	PayCash = "cash"
	PayCard = "card"
)

// Sale is one completed checkout. It is created once and mutated only by the
// day-end cash-out, which flips Status from open to cashed_out for every
// sale belonging to a staff member.
type Sale struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID uuid.UUID `gorm:"type:uuid;not null;index"`
	// StaffID is not a FK on purpose: sales outlive staff rows
	StaffID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffName     string          `gorm:"not null"`
	Date          time.Time       `gorm:"not null;default:now()"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(10);not null"`
	ItemsCount    int             `gorm:"not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
