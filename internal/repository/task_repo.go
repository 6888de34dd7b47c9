package repository

import (
	"errors"
	"time"

	"sprout/internal/domain"
	"sprout/internal/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) CreateTask(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *TaskRepository) CreateLog(log *models.TaskLog) error {
	return r.db.Create(log).Error
}

func (r *TaskRepository) GetLog(parentID, logID uint) (*models.TaskLog, error) {
	var log models.TaskLog
	err := r.db.Preload("Task").
		Where("parent_id = ? AND id = ?", parentID, logID).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *TaskRepository) UpdateLogStatus(logID uint, status string) error {
	return r.db.Model(&models.TaskLog{}).Where("id = ?", logID).
		Update("status", status).Error
}

func (r *TaskRepository) HasPendingLog(parentID, childID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.TaskLog{}).
		Where("parent_id = ? AND child_id = ? AND status = ?", parentID, childID, domain.TaskLogPending).
		Count(&n).Error
	return n > 0, err
}

// WeeklyCounts returns (approved, total) task logs for the child in the
// half-open [weekStart, weekEnd) window, keyed on log_date.
func (r *TaskRepository) WeeklyCounts(parentID, childID uint, weekStart, weekEnd time.Time) (int64, int64, error) {
	base := r.db.Model(&models.TaskLog{}).
		Where("parent_id = ? AND child_id = ? AND log_date >= ? AND log_date < ?",
			parentID, childID, domain.DayKey(weekStart), domain.DayKey(weekEnd))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var approved int64
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", domain.TaskLogApproved).Count(&approved).Error; err != nil {
		return 0, 0, err
	}
	return approved, total, nil
}

// LastLogAt returns the created_at of the child's most recent task log,
// or nil when the child has never logged one.
func (r *TaskRepository) LastLogAt(parentID, childID uint) (*time.Time, error) {
	var log models.TaskLog
	err := r.db.Where("parent_id = ? AND child_id = ?", parentID, childID).
		Order("created_at desc, id desc").First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log.CreatedAt, nil
}
