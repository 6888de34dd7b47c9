package models

import "time"

// AxionProfile is the companion's projected state. Stage and mood are
// derived on every state query; PersonalitySeed is the only stored
// entropy, fixed at creation ("axion-{child_id}") and never changed.
type AxionProfile struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	ChildID           uint       `gorm:"uniqueIndex;not null" json:"child_id"`
	Stage             int        `gorm:"not null;default:1" json:"stage"` // 1..3, function of xp_total
	MoodState         string     `gorm:"size:20;default:'NEUTRAL'" json:"mood_state"`
	PersonalitySeed   string     `gorm:"size:64;not null" json:"personality_seed"`
	LastInteractionAt *time.Time `json:"last_interaction_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (AxionProfile) TableName() string {
	return "axion_profiles"
}

// DailyMood is a child-logged mood check-in, one per day.
type DailyMood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChildID   uint      `gorm:"not null;index:idx_child_mood_date,unique" json:"child_id"`
	MoodDate  string    `gorm:"size:10;not null;index:idx_child_mood_date,unique" json:"mood_date"` // YYYY-MM-DD
	Mood      string    `gorm:"size:20;not null" json:"mood"`                                       // HAPPY, SAD, ANGRY, TIRED, ...
	CreatedAt time.Time `json:"created_at"`

	Child Child `gorm:"foreignKey:ChildID" json:"-"`
}

func (DailyMood) TableName() string {
	return "daily_moods"
}
