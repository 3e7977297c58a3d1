package model

import (
	"time"

	"github.com/google/uuid"
)

// Owner is a shop proprietor account managed by system administration.
// An owner may be deleted only while it owns zero shops.
type Owner struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	Phone        string    `gorm:"not null"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Shops []Shop `gorm:"foreignKey:OwnerID"`
}
