package service

import (
	"errors"
	"math/rand"
	"time"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
)

var ErrNoMissionToday = errors.New("no mission generated today")

// Rand is the dice the mission engine rolls. Production wires math/rand;
// tests supply fixed sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns the production random source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Mission topics, in selection priority order.
const (
	TopicPendingTask = "COMPLETE_PENDING_TASK"
	TopicGoal        = "CONTRIBUTE_TO_GOAL"
	TopicMood        = "LOG_MOOD"
)

type MissionService struct {
	missions *repository.MissionRepository
	children *repository.ChildRepository
	tasks    *repository.TaskRepository
	goals    *repository.GoalRepository
	streaks  *repository.StreakRepository
	game     *GameService
	events   *repository.EventLogRepository

	Rand Rand
	Now  func() time.Time
}

func NewMissionService(
	missions *repository.MissionRepository,
	children *repository.ChildRepository,
	tasks *repository.TaskRepository,
	goals *repository.GoalRepository,
	streaks *repository.StreakRepository,
	game *GameService,
	events *repository.EventLogRepository,
) *MissionService {
	return &MissionService{
		missions: missions,
		children: children,
		tasks:    tasks,
		goals:    goals,
		streaks:  streaks,
		game:     game,
		events:   events,
		Rand:     NewRand(),
		Now:      time.Now,
	}
}

// GenerateDaily returns today's mission for the child, creating it on
// first call. Idempotent per calendar day: repeat calls, including two
// racing requests, all end up with the same row. The loser of a
// concurrent insert re-reads the winner's mission instead of failing.
func (s *MissionService) GenerateDaily(parentID, childID uint) (*models.DailyMission, error) {
	// Ownership gate before any read: the fast path must not leak a
	// mission to a caller holding the wrong parent id.
	if _, err := s.children.GetByID(parentID, childID); err != nil {
		return nil, err
	}
	day := domain.DayKey(s.Now())
	if existing, err := s.missions.GetByDate(parentID, childID, day); err == nil {
		return existing, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	topic, err := s.pickTopic(parentID, childID)
	if err != nil {
		return nil, err
	}
	streak, err := s.streaks.GetOrCreate(childID)
	if err != nil {
		return nil, err
	}
	rarity := s.rollRarity(streak.Current)
	xp, coins := s.rollRewards(rarity)

	mission := &models.DailyMission{
		ParentID:    parentID,
		ChildID:     childID,
		MissionDate: day,
		Topic:       topic,
		Rarity:      rarity,
		XPReward:    xp,
		CoinReward:  coins,
		Status:      domain.MissionPending,
	}
	return s.missions.Insert(mission)
}

// pickTopic selects mission content by priority: an unfinished task log
// beats an unfinished goal beats the mood check-in default.
func (s *MissionService) pickTopic(parentID, childID uint) (string, error) {
	pending, err := s.tasks.HasPendingLog(parentID, childID)
	if err != nil {
		return "", err
	}
	if pending {
		return TopicPendingTask, nil
	}
	locked, err := s.goals.ListLocked(parentID, childID)
	if err != nil {
		return "", err
	}
	if len(locked) > 0 {
		return TopicGoal, nil
	}
	return TopicMood, nil
}

// rollRarity draws once. Longer streaks unlock better tables:
// 21+ days: 20% EPIC, 40% SPECIAL; 7+ days: 40% SPECIAL; else NORMAL.
func (s *MissionService) rollRarity(streak int) string {
	roll := s.Rand.Float64()
	switch {
	case streak >= 21:
		if roll < 0.20 {
			return domain.RarityEpic
		}
		if roll < 0.60 {
			return domain.RaritySpecial
		}
		return domain.RarityNormal
	case streak >= 7:
		if roll < 0.40 {
			return domain.RaritySpecial
		}
		return domain.RarityNormal
	default:
		return domain.RarityNormal
	}
}

// rollRewards draws base XP in [10,20] and base coins in [3,10], then
// applies the rarity multiplier (1/2/3).
func (s *MissionService) rollRewards(rarity string) (int, int) {
	baseXP := 10 + s.Rand.Intn(11)
	baseCoins := 3 + s.Rand.Intn(8)
	mult := 1
	switch rarity {
	case domain.RaritySpecial:
		mult = 2
	case domain.RarityEpic:
		mult = 3
	}
	return baseXP * mult, baseCoins * mult
}

// MissionCompletion reports what completing today's mission paid out.
type MissionCompletion struct {
	Mission     *models.DailyMission `json:"mission"`
	XPGranted   int64                `json:"xp_granted"`
	XPClipped   int64                `json:"xp_clipped"`
	CoinsEarned int64                `json:"coins_earned"`
}

// CompleteToday flips today's mission PENDING → COMPLETED exactly once
// and pays its rewards through the game economy (XP subject to the
// daily cap). A second completion attempt returns the mission unchanged
// with zero payout.
func (s *MissionService) CompleteToday(parentID, childID uint) (*MissionCompletion, error) {
	day := domain.DayKey(s.Now())
	mission, err := s.missions.GetByDate(parentID, childID, day)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoMissionToday
	}
	if err != nil {
		return nil, err
	}
	flipped, err := s.missions.Complete(mission.ID, domain.MissionPending, domain.MissionCompleted)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return &MissionCompletion{Mission: mission}, nil
	}
	mission.Status = domain.MissionCompleted

	granted, clipped, err := s.game.GrantXP(childID, int64(mission.XPReward))
	if err != nil {
		return nil, err
	}
	if err := s.game.AddCoins(childID, int64(mission.CoinReward)); err != nil {
		return nil, err
	}
	s.events.Record(parentID, "mission.completed", "daily_mission", day, "")
	return &MissionCompletion{
		Mission:     mission,
		XPGranted:   granted,
		XPClipped:   clipped,
		CoinsEarned: int64(mission.CoinReward),
	}, nil
}
