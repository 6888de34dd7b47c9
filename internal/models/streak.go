package models

import "time"

// Streak is the consecutive-day counter for qualifying task approvals.
// FreezeUsedToday may only be true on the single day a freeze token was
// spent; any later update clears it first.
type Streak struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ChildID         uint       `gorm:"uniqueIndex;not null" json:"child_id"`
	Current         int        `gorm:"not null;default:0" json:"current"`
	LastDate        *time.Time `json:"last_date"`
	FreezeUsedToday bool       `gorm:"not null;default:false" json:"freeze_used_today"`
	FreezeTokens    int        `gorm:"not null;default:0" json:"freeze_tokens"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (Streak) TableName() string {
	return "streaks"
}

// LearningStreak follows the same increment/reset rules as Streak but
// is advanced by learning-game sessions instead of task approvals.
type LearningStreak struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ChildID         uint       `gorm:"uniqueIndex;not null" json:"child_id"`
	Current         int        `gorm:"not null;default:0" json:"current"`
	LastDate        *time.Time `json:"last_date"`
	FreezeUsedToday bool       `gorm:"not null;default:false" json:"freeze_used_today"`
	FreezeTokens    int        `gorm:"not null;default:0" json:"freeze_tokens"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (LearningStreak) TableName() string {
	return "learning_streaks"
}
