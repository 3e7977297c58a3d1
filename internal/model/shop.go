package model

import (
	"time"

	"github.com/google/uuid"
)

// License status values. The transition active → expired is one-way and set
// only through the system-administration surface.
const (
	LicenseActive  = "active"
	LicenseExpired = "expired"
)

// Shop belongs to exactly one Owner and carries the subscription license that
// gates staff logins. Deleted only while it has zero staff.
type Shop struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"not null"`
	// Location is free text ("Main Street, Addis Ababa")
	Location      string `gorm:"not null"`
	LicenseStatus string `gorm:"type:varchar(20);not null;default:'active'"`
	// LicenseExpiryDate is stored as YYYY-MM-DD text, matching the wire format
	LicenseExpiryDate string `gorm:"not null"`
	LicensePlan       string `gorm:"type:varchar(20);not null;default:'basic'"` // basic | pro | enterprise
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Owner    *Owner    `gorm:"foreignKey:OwnerID"`
	Staff    []Staff   `gorm:"foreignKey:ShopID"`
	Products []Product `gorm:"foreignKey:ShopID"`
	Sales    []Sale    `gorm:"foreignKey:ShopID"`
}

// LicenseIsExpired reports whether staff logins for this shop must be refused.
func (s *Shop) LicenseIsExpired() bool { return s.LicenseStatus == LicenseExpired }
