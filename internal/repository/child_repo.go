package repository

import (
	"errors"

	"sprout/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type ChildRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// WithTx returns a copy bound to tx so callers can compose this
// repository into a larger transaction.
func (r *ChildRepository) WithTx(tx *gorm.DB) *ChildRepository {
	return &ChildRepository{db: tx}
}

func (r *ChildRepository) GetByID(parentID, childID uint) (*models.Child, error) {
	var c models.Child
	err := r.db.Where("parent_id = ? AND id = ?", parentID, childID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChildRepository) AddXP(childID uint, xp int64) error {
	return r.db.Model(&models.Child{}).Where("id = ?", childID).
		Update("xp_total", gorm.Expr("xp_total + ?", xp)).Error
}

// ListBatch pages through all non-deleted children ordered by id,
// returning up to batchSize rows with id > afterID. Used by the nightly
// Axion refresh.
func (r *ChildRepository) ListBatch(afterID uint, batchSize int) ([]models.Child, error) {
	var children []models.Child
	err := r.db.Where("id > ?", afterID).Order("id asc").Limit(batchSize).Find(&children).Error
	return children, err
}
