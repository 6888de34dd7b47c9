package repository

import (
	"errors"

	"sprout/internal/domain"
	"sprout/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{db: tx}
}

func (r *WalletRepository) GetByChildID(parentID, childID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Preload("Allocations").
		Where("parent_id = ? AND child_id = ?", parentID, childID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create sets up the onboarding wallet with a default 50/30/20 split
// when no allocations are given.
func (r *WalletRepository) Create(parentID, childID uint, currency string, allocations map[string]int) (*models.Wallet, error) {
	if len(allocations) == 0 {
		allocations = map[string]int{
			domain.PotSpend:  50,
			domain.PotSave:   30,
			domain.PotDonate: 20,
		}
	}
	w := &models.Wallet{ParentID: parentID, ChildID: childID, Currency: currency}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		for _, pot := range domain.Pots {
			if err := tx.Create(&models.PotAllocation{
				WalletID: w.ID,
				Pot:      pot,
				Percent:  allocations[pot],
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByChildID(parentID, childID)
}

// AllocationMap flattens a wallet's allocation rows to pot → percent.
func AllocationMap(w *models.Wallet) map[string]int {
	m := make(map[string]int, len(w.Allocations))
	for _, a := range w.Allocations {
		m[a.Pot] = a.Percent
	}
	return m
}
