package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/pkg/economy"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrConversionSettled = errors.New("conversion already settled")

// xpPerLevel paces the game profile level curve.
const xpPerLevel = 250

// GameService runs the learning-game economy: capped daily XP grants,
// coin accrual, learning streaks and parent-approved coin→money
// conversions.
type GameService struct {
	db       *gorm.DB
	game     *repository.GameRepository
	children *repository.ChildRepository
	wallets  *repository.WalletRepository
	ledger   *repository.LedgerRepository
	events   *repository.EventLogRepository
	goals    *GoalService
	streaks  *StreakService

	coinRate   decimal.Decimal // cents per coin
	dailyXPCap int64
	Now        func() time.Time
}

func NewGameService(
	db *gorm.DB,
	game *repository.GameRepository,
	children *repository.ChildRepository,
	wallets *repository.WalletRepository,
	ledger *repository.LedgerRepository,
	events *repository.EventLogRepository,
	goals *GoalService,
	streaks *StreakService,
	coinRate decimal.Decimal,
	dailyXPCap int64,
) *GameService {
	return &GameService{
		db:         db,
		game:       game,
		children:   children,
		wallets:    wallets,
		ledger:     ledger,
		events:     events,
		goals:      goals,
		streaks:    streaks,
		coinRate:   coinRate,
		dailyXPCap: dailyXPCap,
		Now:        time.Now,
	}
}

// withTx returns a copy whose repositories all run on tx.
func (s *GameService) withTx(tx *gorm.DB) *GameService {
	return &GameService{
		db:         tx,
		game:       s.game.WithTx(tx),
		children:   s.children.WithTx(tx),
		wallets:    s.wallets.WithTx(tx),
		ledger:     s.ledger.WithTx(tx),
		events:     s.events.WithTx(tx),
		goals:      s.goals.withTx(tx),
		streaks:    s.streaks.withTx(tx),
		coinRate:   s.coinRate,
		dailyXPCap: s.dailyXPCap,
		Now:        s.Now,
	}
}

// GrantXP credits XP against the per-day ceiling. The counter rolls
// over on the calendar day. Whatever the cap clips is returned as the
// second value so callers see what was requested but not granted.
// Negative requests are rejected: a negative grant would drain
// XPGrantedToday and reopen headroom under the cap.
func (s *GameService) GrantXP(childID uint, requested int64) (granted, clipped int64, err error) {
	if requested < 0 {
		return 0, 0, fmt.Errorf("xp grant must be non-negative, got %d", requested)
	}
	profile, err := s.game.GetOrCreateProfile(childID)
	if err != nil {
		return 0, 0, err
	}
	today := domain.DayKey(s.Now())
	if profile.LastXPDate != today {
		profile.LastXPDate = today
		profile.XPGrantedToday = 0
	}
	headroom := s.dailyXPCap - profile.XPGrantedToday
	if headroom < 0 {
		headroom = 0
	}
	granted = requested
	if granted > headroom {
		granted = headroom
	}
	clipped = requested - granted
	profile.XPGrantedToday += granted
	profile.XPTotal += granted
	profile.Level = 1 + int(profile.XPTotal/xpPerLevel)
	if err := s.game.SaveProfile(profile); err != nil {
		return 0, 0, err
	}
	return granted, clipped, nil
}

// AddCoins credits game coins; coins are not capped, but a credit can
// never be negative.
func (s *GameService) AddCoins(childID uint, coins int64) error {
	if coins < 0 {
		return fmt.Errorf("coin credit must be non-negative, got %d", coins)
	}
	profile, err := s.game.GetOrCreateProfile(childID)
	if err != nil {
		return err
	}
	profile.Coins += coins
	return s.game.SaveProfile(profile)
}

// SessionResult summarises one learning-game session.
type SessionResult struct {
	Profile        *models.GameProfile    `json:"profile"`
	Streak         *models.LearningStreak `json:"learning_streak"`
	StreakOutcome  StreakOutcome          `json:"streak_outcome"`
	XPGranted      int64                  `json:"xp_granted"`
	XPClipped      int64                  `json:"xp_clipped"`
	BadgesUnlocked []string               `json:"badges_unlocked"`
}

// RecordSession applies one finished game session: advances the
// learning streak (same transition table as the task streak), grants
// the session XP under the daily cap, credits coins and stamps any
// badge thresholds the streak crossed.
func (s *GameService) RecordSession(parentID, childID uint, xp, coins int64) (*SessionResult, error) {
	if _, err := s.children.GetByID(parentID, childID); err != nil {
		return nil, err
	}
	streak, outcome, badges, err := s.streaks.AdvanceLearning(childID)
	if err != nil {
		return nil, err
	}
	granted, clipped, err := s.GrantXP(childID, xp)
	if err != nil {
		return nil, err
	}
	if err := s.AddCoins(childID, coins); err != nil {
		return nil, err
	}
	profile, err := s.game.GetOrCreateProfile(childID)
	if err != nil {
		return nil, err
	}
	if len(badges) > 0 {
		profile.Badges = appendBadges(profile.Badges, badges)
		if err := s.game.SaveProfile(profile); err != nil {
			return nil, err
		}
	}
	return &SessionResult{
		Profile:        profile,
		Streak:         streak,
		StreakOutcome:  outcome,
		XPGranted:      granted,
		XPClipped:      clipped,
		BadgesUnlocked: badges,
	}, nil
}

func appendBadges(existing string, badges []string) string {
	have := map[string]bool{}
	list := []string{}
	for _, b := range strings.Split(existing, ",") {
		if b = strings.TrimSpace(b); b != "" {
			have[b] = true
			list = append(list, b)
		}
	}
	for _, b := range badges {
		if !have[b] {
			list = append(list, b)
		}
	}
	return strings.Join(list, ",")
}

// RequestConversion holds coins out of the profile and opens a PENDING
// conversion at the fixed exchange rate. Money does not move until a
// parent approves.
func (s *GameService) RequestConversion(parentID, childID uint, coins int64) (*models.CoinConversion, error) {
	if coins <= 0 {
		return nil, fmt.Errorf("conversion coins must be positive, got %d", coins)
	}
	if _, err := s.children.GetByID(parentID, childID); err != nil {
		return nil, err
	}
	if err := s.game.HoldCoins(childID, coins); err != nil {
		return nil, err
	}
	cents := decimal.NewFromInt(coins).Mul(s.coinRate).Round(0).IntPart()
	conversion := &models.CoinConversion{
		ParentID:    parentID,
		ChildID:     childID,
		Coins:       coins,
		AmountCents: cents,
		Status:      domain.ConversionPending,
	}
	if err := s.game.CreateConversion(conversion); err != nil {
		// put the held coins back; the request never existed
		_ = s.game.ReturnCoins(childID, coins)
		return nil, err
	}
	s.events.Record(parentID, "conversion.requested", "coin_conversion",
		fmt.Sprintf("%d", conversion.ID), "")
	return conversion, nil
}

// ApproveConversion moves the pending amount into the child's wallet as
// a CONVERSION credit with the wallet's pot split, then re-syncs goals.
// Settling is guarded so a double approval cannot pay twice, and the
// settle and the ledger write commit as one transaction so a failure
// cannot mark the conversion APPROVED with no money moved.
func (s *GameService) ApproveConversion(parentID, conversionID uint) (*models.CoinConversion, error) {
	var conversion *models.CoinConversion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.withTx(tx).approveConversion(parentID, conversionID)
		if err != nil {
			return err
		}
		conversion = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conversion, nil
}

func (s *GameService) approveConversion(parentID, conversionID uint) (*models.CoinConversion, error) {
	conversion, err := s.game.GetConversion(parentID, conversionID)
	if err != nil {
		return nil, err
	}
	wallet, err := s.wallets.GetByChildID(parentID, conversion.ChildID)
	if err != nil {
		return nil, err
	}
	split, err := economy.SplitByPots(conversion.AmountCents, repository.AllocationMap(wallet))
	if err != nil {
		return nil, err
	}
	settled, err := s.game.SettleConversion(conversion.ID, domain.ConversionApproved)
	if err != nil {
		return nil, err
	}
	if !settled {
		return nil, ErrConversionSettled
	}
	conversion.Status = domain.ConversionApproved
	if err := s.ledger.Append(&models.LedgerTransaction{
		ParentID:    parentID,
		WalletID:    wallet.ID,
		Type:        domain.TxTypeConversion,
		AmountCents: conversion.AmountCents,
		Reference:   fmt.Sprintf("conversion:%d", conversion.ID),
		Metadata:    economy.MarshalPotSplit(split),
	}); err != nil {
		return nil, err
	}
	if _, err := s.goals.SyncLockedGoals(parentID, conversion.ChildID); err != nil {
		return nil, err
	}
	s.events.Record(parentID, "conversion.approved", "coin_conversion",
		fmt.Sprintf("%d", conversion.ID), "")
	return conversion, nil
}

// RejectConversion returns the held coins to the profile. The settle
// and the coin return commit together, matching the approval path.
func (s *GameService) RejectConversion(parentID, conversionID uint) (*models.CoinConversion, error) {
	var conversion *models.CoinConversion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.withTx(tx).rejectConversion(parentID, conversionID)
		if err != nil {
			return err
		}
		conversion = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conversion, nil
}

func (s *GameService) rejectConversion(parentID, conversionID uint) (*models.CoinConversion, error) {
	conversion, err := s.game.GetConversion(parentID, conversionID)
	if err != nil {
		return nil, err
	}
	settled, err := s.game.SettleConversion(conversion.ID, domain.ConversionRejected)
	if err != nil {
		return nil, err
	}
	if !settled {
		return nil, ErrConversionSettled
	}
	conversion.Status = domain.ConversionRejected
	if err := s.game.ReturnCoins(conversion.ChildID, conversion.Coins); err != nil {
		return nil, err
	}
	s.events.Record(parentID, "conversion.rejected", "coin_conversion",
		fmt.Sprintf("%d", conversion.ID), "")
	return conversion, nil
}
