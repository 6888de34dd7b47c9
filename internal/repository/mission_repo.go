package repository

import (
	"errors"

	"sprout/internal/models"

	"gorm.io/gorm"
)

type MissionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// GetByDate is tenant-scoped: a mission is only visible through its own
// parent id.
func (r *MissionRepository) GetByDate(parentID, childID uint, day string) (*models.DailyMission, error) {
	var m models.DailyMission
	err := r.db.Where("parent_id = ? AND child_id = ? AND mission_date = ?", parentID, childID, day).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert creates the day's mission. The unique (child_id, mission_date)
// index makes this race-safe: when two requests collide, the loser gets
// gorm.ErrDuplicatedKey and re-reads the winner's row instead of
// erroring out.
func (r *MissionRepository) Insert(m *models.DailyMission) (*models.DailyMission, error) {
	err := r.db.Create(m).Error
	if err == nil {
		return m, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.GetByDate(m.ParentID, m.ChildID, m.MissionDate)
	}
	return nil, err
}

// Complete transitions PENDING → COMPLETED exactly once; the status
// guard in the WHERE clause makes a second call a no-op.
func (r *MissionRepository) Complete(missionID uint, from, to string) (bool, error) {
	res := r.db.Model(&models.DailyMission{}).
		Where("id = ? AND status = ?", missionID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
