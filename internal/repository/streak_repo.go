package repository

import (
	"errors"

	"sprout/internal/models"

	"gorm.io/gorm"
)

type StreakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *StreakRepository) WithTx(tx *gorm.DB) *StreakRepository {
	return &StreakRepository{db: tx}
}

// GetOrCreate returns the child's streak row, creating a zeroed one on
// first touch.
func (r *StreakRepository) GetOrCreate(childID uint) (*models.Streak, error) {
	var s models.Streak
	err := r.db.Where("child_id = ?", childID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	s = models.Streak{ChildID: childID}
	if err := r.db.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StreakRepository) Save(s *models.Streak) error {
	return r.db.Save(s).Error
}

func (r *StreakRepository) AddFreezeTokens(childID uint, n int) error {
	s, err := r.GetOrCreate(childID)
	if err != nil {
		return err
	}
	s.FreezeTokens += n
	return r.db.Model(s).Update("freeze_tokens", s.FreezeTokens).Error
}

// Learning streak mirrors the task streak storage.

func (r *StreakRepository) GetOrCreateLearning(childID uint) (*models.LearningStreak, error) {
	var s models.LearningStreak
	err := r.db.Where("child_id = ?", childID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	s = models.LearningStreak{ChildID: childID}
	if err := r.db.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StreakRepository) SaveLearning(s *models.LearningStreak) error {
	return r.db.Save(s).Error
}
