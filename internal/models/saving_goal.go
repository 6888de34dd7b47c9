package models

import (
	"time"

	"gorm.io/gorm"
)

// SavingGoal unlocks exactly once, when the child's derived saved total
// reaches the target. It never re-locks.
type SavingGoal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ParentID    uint           `gorm:"not null;index" json:"parent_id"`
	ChildID     uint           `gorm:"not null;index" json:"child_id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	TargetCents int64          `gorm:"not null" json:"target_cents"`
	IsLocked    bool           `gorm:"not null;default:true;index" json:"is_locked"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (SavingGoal) TableName() string {
	return "saving_goals"
}
