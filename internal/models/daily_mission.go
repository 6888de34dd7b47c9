package models

import "time"

// DailyMission is generated at most once per child per calendar day.
// The (child_id, mission_date) unique index is what makes concurrent
// generation race-safe: the loser of the insert re-reads the winner's
// row.
type DailyMission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ParentID    uint      `gorm:"not null;index" json:"parent_id"`
	ChildID     uint      `gorm:"not null;index:idx_child_mission_date,unique" json:"child_id"`
	MissionDate string    `gorm:"size:10;not null;index:idx_child_mission_date,unique" json:"mission_date"` // YYYY-MM-DD
	Topic       string    `gorm:"size:50;not null" json:"topic"`
	Rarity      string    `gorm:"size:10;not null" json:"rarity"` // NORMAL, SPECIAL, EPIC
	XPReward    int       `gorm:"not null" json:"xp_reward"`
	CoinReward  int       `gorm:"not null" json:"coin_reward"`
	Status      string    `gorm:"size:10;default:'PENDING'" json:"status"` // PENDING, COMPLETED
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (DailyMission) TableName() string {
	return "daily_missions"
}
