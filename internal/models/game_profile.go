package models

import "time"

// GameProfile accumulates the learning-game economy: coins, XP and
// badges. Daily XP grants are clipped against a per-day ceiling tracked
// by XPGrantedToday/LastXPDate.
type GameProfile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ChildID        uint      `gorm:"uniqueIndex;not null" json:"child_id"`
	Coins          int64     `gorm:"not null;default:0" json:"coins"`
	XPTotal        int64     `gorm:"not null;default:0" json:"xp_total"`
	Level          int       `gorm:"not null;default:1" json:"level"`
	XPGrantedToday int64     `gorm:"not null;default:0" json:"xp_granted_today"`
	LastXPDate     string    `gorm:"size:10" json:"last_xp_date"` // YYYY-MM-DD
	Badges         string    `gorm:"type:text" json:"badges"`     // comma-separated
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (GameProfile) TableName() string {
	return "game_profiles"
}

// CoinConversion is a parent-approved exchange of game coins for wallet
// money. Coins are held against the profile while PENDING and either
// move into the wallet (APPROVED) or return (REJECTED).
type CoinConversion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ParentID    uint      `gorm:"not null;index" json:"parent_id"`
	ChildID     uint      `gorm:"not null;index" json:"child_id"`
	Coins       int64     `gorm:"not null" json:"coins"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Status      string    `gorm:"size:10;default:'PENDING';index" json:"status"` // PENDING, APPROVED, REJECTED
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (CoinConversion) TableName() string {
	return "coin_conversions"
}
