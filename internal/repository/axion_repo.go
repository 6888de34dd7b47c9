package repository

import (
	"errors"
	"fmt"

	"sprout/internal/models"

	"gorm.io/gorm"
)

type AxionRepository struct {
	db *gorm.DB
}

func NewAxionRepository(db *gorm.DB) *AxionRepository {
	return &AxionRepository{db: db}
}

// GetOrCreate returns the child's profile, minting the stable
// personality seed on first touch. The seed never changes afterwards.
func (r *AxionRepository) GetOrCreate(childID uint) (*models.AxionProfile, error) {
	var p models.AxionProfile
	err := r.db.Where("child_id = ?", childID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p = models.AxionProfile{
		ChildID:         childID,
		Stage:           1,
		PersonalitySeed: fmt.Sprintf("axion-%d", childID),
	}
	if err := r.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AxionRepository) Save(p *models.AxionProfile) error {
	return r.db.Save(p).Error
}

func (r *AxionRepository) LogMood(mood *models.DailyMood) error {
	return r.db.Create(mood).Error
}

// LatestMood returns the child's most recent mood log, or "" if none.
func (r *AxionRepository) LatestMood(childID uint) (string, error) {
	var m models.DailyMood
	err := r.db.Where("child_id = ?", childID).
		Order("mood_date desc, id desc").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Mood, nil
}
