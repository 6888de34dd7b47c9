package models

import "time"

// LedgerTransaction is an immutable append-only money movement record.
// amount_cents is always stored non-negative; the sign is a function of
// Type (economy.SignedAmountCents). Metadata carries the pot_split the
// amount was divided by at write time. Rows are never updated or
// deleted; balances come from replay.
type LedgerTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ParentID    uint      `gorm:"not null;index" json:"parent_id"`
	WalletID    uint      `gorm:"not null;index" json:"wallet_id"`
	Type        string    `gorm:"size:20;not null;index" json:"type"` // EARN, SPEND, ALLOWANCE, LOAN, CONVERSION
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Reference   string    `gorm:"size:64;index" json:"reference"` // e.g. task_log id, conversion id
	Metadata    string    `gorm:"type:text" json:"metadata"`      // JSON, includes pot_split
	CreatedAt   time.Time `json:"created_at"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (LedgerTransaction) TableName() string {
	return "ledger_transactions"
}
