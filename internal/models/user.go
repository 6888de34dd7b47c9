package models

import (
	"time"

	"gorm.io/gorm"
)

// Parent is the tenant root: children, wallets and ledger history all
// hang off a parent account. Deleting a parent soft-deletes the tenant.
type Parent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string         `gorm:"size:100" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Parent) TableName() string {
	return "parents"
}

type Child struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ParentID       uint           `gorm:"not null;index" json:"parent_id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	XPTotal        int64          `gorm:"not null;default:0" json:"xp_total"`
	AllowanceCents int64          `gorm:"not null;default:0" json:"allowance_cents"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Parent Parent `gorm:"foreignKey:ParentID" json:"-"`
}

func (Child) TableName() string {
	return "children"
}
