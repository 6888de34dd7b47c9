package repository

import (
	"sprout/internal/models"

	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *GoalRepository) WithTx(tx *gorm.DB) *GoalRepository {
	return &GoalRepository{db: tx}
}

func (r *GoalRepository) Create(goal *models.SavingGoal) error {
	return r.db.Create(goal).Error
}

func (r *GoalRepository) ListByChild(parentID, childID uint) ([]models.SavingGoal, error) {
	var goals []models.SavingGoal
	err := r.db.Where("parent_id = ? AND child_id = ?", parentID, childID).
		Order("created_at asc, id asc").Find(&goals).Error
	return goals, err
}

// ListLocked returns the child's locked goals oldest-first, the order
// they are evaluated for unlocking.
func (r *GoalRepository) ListLocked(parentID, childID uint) ([]models.SavingGoal, error) {
	var goals []models.SavingGoal
	err := r.db.Where("parent_id = ? AND child_id = ? AND is_locked = ?", parentID, childID, true).
		Order("created_at asc, id asc").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) Unlock(goalID uint) error {
	return r.db.Model(&models.SavingGoal{}).Where("id = ?", goalID).
		Update("is_locked", false).Error
}
