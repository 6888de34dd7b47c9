package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is a parent-defined chore. Difficulty and weight together decide
// the payout (see pkg/economy).
type Task struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ParentID   uint           `gorm:"not null;index" json:"parent_id"`
	Name       string         `gorm:"size:150;not null" json:"name"`
	Difficulty string         `gorm:"size:20;not null" json:"difficulty"` // EASY, MEDIUM, HARD, LEGENDARY
	Weight     int            `gorm:"not null;default:1" json:"weight"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Parent Parent `gorm:"foreignKey:ParentID" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskLog records one child-submitted completion awaiting parent review.
type TaskLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ParentID  uint           `gorm:"not null;index" json:"parent_id"`
	ChildID   uint           `gorm:"not null;index" json:"child_id"`
	TaskID    uint           `gorm:"not null;index" json:"task_id"`
	Status    string         `gorm:"size:20;default:'PENDING';index" json:"status"` // PENDING, APPROVED, REJECTED
	LogDate   string         `gorm:"size:10;not null;index" json:"log_date"`        // YYYY-MM-DD
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
	Task  Task  `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

func (TaskLog) TableName() string {
	return "task_logs"
}
