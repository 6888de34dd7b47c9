package service

import (
	"errors"
	"fmt"
	"time"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/pkg/economy"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrTaskLogReviewed = errors.New("task log already reviewed")

// RewardService is the task-approval pipeline: reward lookup → pot
// split → ledger write → goal sync → streak advance → XP grant. It also
// runs the recurring allowance credits through the same split/ledger
// path.
type RewardService struct {
	db       *gorm.DB
	children *repository.ChildRepository
	tasks    *repository.TaskRepository
	wallets  *repository.WalletRepository
	ledger   *repository.LedgerRepository
	events   *repository.EventLogRepository
	goals    *GoalService
	streaks  *StreakService

	Now func() time.Time
}

func NewRewardService(
	db *gorm.DB,
	children *repository.ChildRepository,
	tasks *repository.TaskRepository,
	wallets *repository.WalletRepository,
	ledger *repository.LedgerRepository,
	events *repository.EventLogRepository,
	goals *GoalService,
	streaks *StreakService,
) *RewardService {
	return &RewardService{
		db:       db,
		children: children,
		tasks:    tasks,
		wallets:  wallets,
		ledger:   ledger,
		events:   events,
		goals:    goals,
		streaks:  streaks,
		Now:      time.Now,
	}
}

// withTx returns a copy whose repositories all run on tx.
func (s *RewardService) withTx(tx *gorm.DB) *RewardService {
	return &RewardService{
		db:       tx,
		children: s.children.WithTx(tx),
		tasks:    s.tasks.WithTx(tx),
		wallets:  s.wallets.WithTx(tx),
		ledger:   s.ledger.WithTx(tx),
		events:   s.events.WithTx(tx),
		goals:    s.goals.withTx(tx),
		streaks:  s.streaks.withTx(tx),
		Now:      s.Now,
	}
}

// TaskApproval summarises everything one approval moved.
type TaskApproval struct {
	TaskLog       *models.TaskLog  `json:"task_log"`
	AmountCents   int64            `json:"amount_cents"`
	Split         economy.PotSplit `json:"pot_split"`
	UnlockedGoals []uint           `json:"unlocked_goal_ids"`
	Streak        *models.Streak   `json:"streak"`
	StreakOutcome StreakOutcome    `json:"streak_outcome"`
	XPGranted     int64            `json:"xp_granted"`
}

// taskXP converts a payout to the XP granted alongside it.
func taskXP(rewardCents int64) int64 {
	return rewardCents / 5
}

// ApproveTaskLog reviews a pending completion. Reward and split are
// computed before anything persists, and every write of the pipeline
// (status flip, ledger row, goal unlocks, streak, XP) commits or rolls
// back as one transaction, so a failure mid-pipeline leaves no partial
// state behind.
func (s *RewardService) ApproveTaskLog(parentID, logID uint) (*TaskApproval, error) {
	var approval *TaskApproval
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a, err := s.withTx(tx).approveTaskLog(parentID, logID)
		if err != nil {
			return err
		}
		approval = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approval, nil
}

func (s *RewardService) approveTaskLog(parentID, logID uint) (*TaskApproval, error) {
	taskLog, err := s.tasks.GetLog(parentID, logID)
	if err != nil {
		return nil, err
	}
	if taskLog.Status != domain.TaskLogPending {
		return nil, ErrTaskLogReviewed
	}
	reward, err := economy.RewardCents(taskLog.Task.Difficulty, taskLog.Task.Weight)
	if err != nil {
		return nil, err
	}
	wallet, err := s.wallets.GetByChildID(parentID, taskLog.ChildID)
	if err != nil {
		return nil, err
	}
	split, err := economy.SplitByPots(reward, repository.AllocationMap(wallet))
	if err != nil {
		return nil, err
	}

	if err := s.tasks.UpdateLogStatus(taskLog.ID, domain.TaskLogApproved); err != nil {
		return nil, err
	}
	taskLog.Status = domain.TaskLogApproved
	if err := s.ledger.Append(&models.LedgerTransaction{
		ParentID:    parentID,
		WalletID:    wallet.ID,
		Type:        domain.TxTypeEarn,
		AmountCents: reward,
		Reference:   fmt.Sprintf("task_log:%d", taskLog.ID),
		Metadata:    economy.MarshalPotSplit(split),
	}); err != nil {
		return nil, err
	}

	unlocked, err := s.goals.SyncLockedGoals(parentID, taskLog.ChildID)
	if err != nil {
		return nil, err
	}
	streak, outcome, err := s.streaks.Advance(taskLog.ChildID)
	if err != nil {
		return nil, err
	}
	xp := taskXP(reward)
	if err := s.children.AddXP(taskLog.ChildID, xp); err != nil {
		return nil, err
	}
	s.events.Record(parentID, "task_log.approved", "task_log",
		fmt.Sprintf("%d", taskLog.ID), economy.MarshalPotSplit(split))

	return &TaskApproval{
		TaskLog:       taskLog,
		AmountCents:   reward,
		Split:         split,
		UnlockedGoals: unlocked,
		Streak:        streak,
		StreakOutcome: outcome,
		XPGranted:     xp,
	}, nil
}

// RejectTaskLog closes a pending completion with no money movement.
func (s *RewardService) RejectTaskLog(parentID, logID uint) (*models.TaskLog, error) {
	taskLog, err := s.tasks.GetLog(parentID, logID)
	if err != nil {
		return nil, err
	}
	if taskLog.Status != domain.TaskLogPending {
		return nil, ErrTaskLogReviewed
	}
	if err := s.tasks.UpdateLogStatus(taskLog.ID, domain.TaskLogRejected); err != nil {
		return nil, err
	}
	taskLog.Status = domain.TaskLogRejected
	return taskLog, nil
}

// RunWeeklyAllowance credits every child's configured allowance as an
// ALLOWANCE transaction with the wallet's pot split, then re-syncs
// goals. Children without an allowance or a wallet are skipped.
// Allowance credits do not touch the streak. Returns how many children
// were credited.
func (s *RewardService) RunWeeklyAllowance(batchSize int) (int, error) {
	credited := 0
	var afterID uint
	for {
		children, err := s.children.ListBatch(afterID, batchSize)
		if err != nil {
			return credited, err
		}
		if len(children) == 0 {
			return credited, nil
		}
		for _, child := range children {
			afterID = child.ID
			if child.AllowanceCents <= 0 {
				continue
			}
			if err := s.creditAllowance(child); err != nil {
				log.Warn().Err(err).Uint("child_id", child.ID).Msg("allowance credit failed")
				continue
			}
			credited++
		}
	}
}

// creditAllowance runs one child's credit atomically: the ledger row
// and the goal sync land together or not at all.
func (s *RewardService) creditAllowance(child models.Child) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.withTx(tx).creditAllowanceTx(child)
	})
}

func (s *RewardService) creditAllowanceTx(child models.Child) error {
	wallet, err := s.wallets.GetByChildID(child.ParentID, child.ID)
	if err != nil {
		return err
	}
	split, err := economy.SplitByPots(child.AllowanceCents, repository.AllocationMap(wallet))
	if err != nil {
		return err
	}
	if err := s.ledger.Append(&models.LedgerTransaction{
		ParentID:    child.ParentID,
		WalletID:    wallet.ID,
		Type:        domain.TxTypeAllowance,
		AmountCents: child.AllowanceCents,
		Reference:   fmt.Sprintf("allowance:%s", domain.DayKey(s.Now())),
		Metadata:    economy.MarshalPotSplit(split),
	}); err != nil {
		return err
	}
	if _, err := s.goals.SyncLockedGoals(child.ParentID, child.ID); err != nil {
		return err
	}
	s.events.Record(child.ParentID, "allowance.credited", "wallet",
		fmt.Sprintf("%d", wallet.ID), economy.MarshalPotSplit(split))
	return nil
}
