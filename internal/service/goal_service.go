package service

import (
	"strconv"

	"sprout/internal/repository"
	"sprout/pkg/economy"

	"gorm.io/gorm"
)

// GoalService derives saved totals from ledger history and unlocks
// savings goals. It never stores a balance: every total is a replay of
// the append-only ledger, so the result is idempotent and immune to
// drift between a cached column and history.
type GoalService struct {
	wallets *repository.WalletRepository
	ledger  *repository.LedgerRepository
	goals   *repository.GoalRepository
	events  *repository.EventLogRepository
}

func NewGoalService(
	wallets *repository.WalletRepository,
	ledger *repository.LedgerRepository,
	goals *repository.GoalRepository,
	events *repository.EventLogRepository,
) *GoalService {
	return &GoalService{wallets: wallets, ledger: ledger, goals: goals, events: events}
}

// withTx returns a copy whose repositories all run on tx.
func (s *GoalService) withTx(tx *gorm.DB) *GoalService {
	return &GoalService{
		wallets: s.wallets.WithTx(tx),
		ledger:  s.ledger.WithTx(tx),
		goals:   s.goals.WithTx(tx),
		events:  s.events.WithTx(tx),
	}
}

// SavedTotal replays the child's ledger in append order (created_at,
// then id) and accumulates the SAVE portion of each transaction, signed
// by the transaction type. Transactions with no SAVE portion are
// skipped. Read-only; safe to run concurrently with new inserts.
func (s *GoalService) SavedTotal(parentID, childID uint) (int64, error) {
	wallet, err := s.wallets.GetByChildID(parentID, childID)
	if err != nil {
		return 0, err
	}
	txs, err := s.ledger.ListByWallet(parentID, wallet.ID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, tx := range txs {
		save := economy.ExtractPotSplit(tx.Metadata).Save
		if save == 0 {
			continue
		}
		if economy.SignedAmountCents(tx.Type, tx.AmountCents) >= 0 {
			total += save
		} else {
			total -= save
		}
	}
	return total, nil
}

// SyncLockedGoals recomputes the saved total once and unlocks every
// locked goal whose target it reaches, oldest first. Goals are judged
// independently against the same total, so reaching 500 with two 300
// goals unlocks both. Returns the ids unlocked by this call.
func (s *GoalService) SyncLockedGoals(parentID, childID uint) ([]uint, error) {
	total, err := s.SavedTotal(parentID, childID)
	if err != nil {
		return nil, err
	}
	locked, err := s.goals.ListLocked(parentID, childID)
	if err != nil {
		return nil, err
	}
	var unlocked []uint
	for _, goal := range locked {
		if goal.TargetCents > total {
			continue
		}
		if err := s.goals.Unlock(goal.ID); err != nil {
			return unlocked, err
		}
		unlocked = append(unlocked, goal.ID)
		s.events.Record(parentID, "goal.unlocked", "saving_goal",
			strconv.FormatUint(uint64(goal.ID), 10), "")
	}
	return unlocked, nil
}

// ActiveGoalProgress reports percentage progress toward the oldest
// still-locked goal, or 0 when nothing is locked. May exceed 100 while
// an unlock is pending.
func (s *GoalService) ActiveGoalProgress(parentID, childID uint) (int, error) {
	locked, err := s.goals.ListLocked(parentID, childID)
	if err != nil {
		return 0, err
	}
	if len(locked) == 0 {
		return 0, nil
	}
	target := locked[0].TargetCents
	if target <= 0 {
		return 0, nil
	}
	total, err := s.SavedTotal(parentID, childID)
	if err != nil {
		return 0, err
	}
	pct := int(total * 100 / target)
	if pct < 0 {
		// a SPEND-heavy history can drive the saved total negative
		pct = 0
	}
	return pct, nil
}

// PotBalances replays the ledger into per-pot balances. The signed sum
// of every pot equals the wallet's derived total.
func (s *GoalService) PotBalances(parentID, childID uint) (economy.PotSplit, error) {
	wallet, err := s.wallets.GetByChildID(parentID, childID)
	if err != nil {
		return economy.PotSplit{}, err
	}
	txs, err := s.ledger.ListByWallet(parentID, wallet.ID)
	if err != nil {
		return economy.PotSplit{}, err
	}
	var balance economy.PotSplit
	for _, tx := range txs {
		split := economy.ExtractPotSplit(tx.Metadata)
		if economy.SignedAmountCents(tx.Type, tx.AmountCents) >= 0 {
			balance.Spend += split.Spend
			balance.Save += split.Save
			balance.Donate += split.Donate
		} else {
			balance.Spend -= split.Spend
			balance.Save -= split.Save
			balance.Donate -= split.Donate
		}
	}
	return balance, nil
}
