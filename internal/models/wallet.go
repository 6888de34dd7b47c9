package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a child's money. There is no stored balance column:
// balances are always derived by replaying ledger transactions, so the
// wallet row carries only identity, currency and the pot allocation.
type Wallet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ParentID  uint           `gorm:"not null;index" json:"parent_id"`
	ChildID   uint           `gorm:"uniqueIndex;not null" json:"child_id"`
	Currency  string         `gorm:"size:3;default:'USD'" json:"currency"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Child       Child           `gorm:"foreignKey:ChildID" json:"-"`
	Allocations []PotAllocation `gorm:"foreignKey:WalletID" json:"allocations,omitempty"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// PotAllocation fixes what percentage of every credit lands in a pot.
// A wallet's allocations sum to 100.
type PotAllocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WalletID  uint      `gorm:"not null;index:idx_wallet_pot,unique" json:"wallet_id"`
	Pot       string    `gorm:"size:10;not null;index:idx_wallet_pot,unique" json:"pot"` // SPEND, SAVE, DONATE
	Percent   int       `gorm:"not null" json:"percent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PotAllocation) TableName() string {
	return "pot_allocations"
}
