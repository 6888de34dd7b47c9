package repository

import (
	"sprout/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *LedgerRepository) WithTx(tx *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: tx}
}

// Append writes one immutable transaction. A missing reference gets a
// generated one so every row stays traceable.
func (r *LedgerRepository) Append(tx *models.LedgerTransaction) error {
	if tx.Reference == "" {
		tx.Reference = uuid.NewString()
	}
	return r.db.Create(tx).Error
}

// ListByWallet replays history in append order: created_at ascending,
// ties broken by id ascending. The goal tracker depends on this
// ordering being stable.
func (r *LedgerRepository) ListByWallet(parentID, walletID uint) ([]models.LedgerTransaction, error) {
	var txs []models.LedgerTransaction
	err := r.db.Where("parent_id = ? AND wallet_id = ?", parentID, walletID).
		Order("created_at asc, id asc").Find(&txs).Error
	return txs, err
}
