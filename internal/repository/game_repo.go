package repository

import (
	"errors"

	"sprout/internal/domain"
	"sprout/internal/models"

	"gorm.io/gorm"
)

var ErrInsufficientCoins = errors.New("insufficient coins")

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *GameRepository) WithTx(tx *gorm.DB) *GameRepository {
	return &GameRepository{db: tx}
}

func (r *GameRepository) GetOrCreateProfile(childID uint) (*models.GameProfile, error) {
	var p models.GameProfile
	err := r.db.Where("child_id = ?", childID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p = models.GameProfile{ChildID: childID, Level: 1}
	if err := r.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GameRepository) SaveProfile(p *models.GameProfile) error {
	return r.db.Save(p).Error
}

// HoldCoins atomically deducts coins for a pending conversion; fails if
// the profile has fewer spendable coins than requested.
func (r *GameRepository) HoldCoins(childID uint, coins int64) error {
	res := r.db.Model(&models.GameProfile{}).
		Where("child_id = ? AND coins >= ?", childID, coins).
		Update("coins", gorm.Expr("coins - ?", coins))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCoins
	}
	return nil
}

func (r *GameRepository) ReturnCoins(childID uint, coins int64) error {
	return r.db.Model(&models.GameProfile{}).Where("child_id = ?", childID).
		Update("coins", gorm.Expr("coins + ?", coins)).Error
}

func (r *GameRepository) CreateConversion(c *models.CoinConversion) error {
	return r.db.Create(c).Error
}

func (r *GameRepository) GetConversion(parentID, conversionID uint) (*models.CoinConversion, error) {
	var c models.CoinConversion
	err := r.db.Where("parent_id = ? AND id = ?", parentID, conversionID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SettleConversion flips a PENDING conversion to its terminal status;
// returns false when another caller settled it first.
func (r *GameRepository) SettleConversion(conversionID uint, status string) (bool, error) {
	res := r.db.Model(&models.CoinConversion{}).
		Where("id = ? AND status = ?", conversionID, domain.ConversionPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
