package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles.
const (
	RoleSupervisor = "supervisor"
	RoleCashier    = "cashier"
)

// Staff is a shop employee with register access.
type Staff struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
}
