package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UoM is one sellable packaging tier of a product. Level 1 is the base unit
// and always has multiplier 1; higher levels represent packs/crates whose
// multiplier converts a sold quantity into base units.
type UoM struct {
	Level      int             `json:"level"`
	Name       string          `json:"name"`
	Multiplier int             `json:"multiplier"`
	Barcode    string          `json:"barcode"`
	Price      decimal.Decimal `json:"price"`
}

// UoMList is stored as a JSONB array on the products table.
type UoMList []UoM

func (u UoMList) Value() (driver.Value, error) {
	if u == nil {
		return "[]", nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (u *UoMList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, u)
	case string:
		return json.Unmarshal([]byte(v), u)
	case nil:
		*u = nil
		return nil
	default:
		return fmt.Errorf("uoms: unsupported scan type %T", src)
	}
}

// ByLevel returns the tier with the given level, or nil.
func (u UoMList) ByLevel(level int) *UoM {
	for i := range u {
		if u[i].Level == level {
			return &u[i]
		}
	}
	return nil
}

// ByBarcode returns the tier matching barcode, or nil.
func (u UoMList) ByBarcode(barcode string) *UoM {
	for i := range u {
		if u[i].Barcode == barcode {
			return &u[i]
		}
	}
	return nil
}

// Product belongs to exactly one Shop. StockQuantity is tracked in base
// units and is never negative — checkout clamps decrements at zero.
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"index;not null"`
	Category          string          `gorm:"not null"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:10"`
	UoMs              UoMList         `gorm:"type:jsonb;not null;default:'[]';column:uoms"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
}
