package service

import (
	"time"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"

	"gorm.io/gorm"
)

// StreakOutcome says what a qualifying event did to the streak.
type StreakOutcome string

const (
	StreakStarted  StreakOutcome = "STARTED"  // first ever qualifying day
	StreakNoop     StreakOutcome = "NOOP"     // same day, nothing changed
	StreakExtended StreakOutcome = "EXTENDED" // consecutive day
	StreakFrozen   StreakOutcome = "FROZEN"   // gap bridged by a freeze token
	StreakReset    StreakOutcome = "RESET"    // gap, no token, back to 1
)

// streakState is the streak fields the transition table operates on,
// shared between the task streak and the learning streak.
type streakState struct {
	Current         int
	LastDate        *time.Time
	FreezeUsedToday bool
	FreezeTokens    int
}

// advanceStreak is the transition table. Priority is fixed: a same-day
// event is a true no-op; a one-day gap always extends, even with zero
// tokens; only a gap of two or more days consults the freeze tokens.
// FreezeUsedToday is cleared on any new calendar day before a token may
// set it again.
func advanceStreak(s streakState, today time.Time) (streakState, StreakOutcome) {
	day := domain.Midnight(today)
	if s.LastDate == nil {
		s.Current = 1
		s.LastDate = &day
		return s, StreakStarted
	}
	gap := domain.DaysBetween(*s.LastDate, today)
	if gap <= 0 {
		return s, StreakNoop
	}
	s.FreezeUsedToday = false
	switch {
	case gap == 1:
		s.Current++
	case s.FreezeTokens > 0:
		s.FreezeTokens--
		s.FreezeUsedToday = true
		s.LastDate = &day
		return s, StreakFrozen
	default:
		s.Current = 1
		s.LastDate = &day
		return s, StreakReset
	}
	s.LastDate = &day
	return s, StreakExtended
}

type StreakService struct {
	streaks *repository.StreakRepository

	Now func() time.Time
}

func NewStreakService(streaks *repository.StreakRepository) *StreakService {
	return &StreakService{streaks: streaks, Now: time.Now}
}

// withTx returns a copy whose repository runs on tx. The clock carries
// over.
func (s *StreakService) withTx(tx *gorm.DB) *StreakService {
	return &StreakService{streaks: s.streaks.WithTx(tx), Now: s.Now}
}

// Advance applies one qualifying task approval to the child's streak
// and persists the result. A same-day repeat returns the existing row
// untouched.
func (s *StreakService) Advance(childID uint) (*models.Streak, StreakOutcome, error) {
	row, err := s.streaks.GetOrCreate(childID)
	if err != nil {
		return nil, "", err
	}
	next, outcome := advanceStreak(streakState{
		Current:         row.Current,
		LastDate:        row.LastDate,
		FreezeUsedToday: row.FreezeUsedToday,
		FreezeTokens:    row.FreezeTokens,
	}, s.Now())
	if outcome == StreakNoop {
		return row, outcome, nil
	}
	row.Current = next.Current
	row.LastDate = next.LastDate
	row.FreezeUsedToday = next.FreezeUsedToday
	row.FreezeTokens = next.FreezeTokens
	if err := s.streaks.Save(row); err != nil {
		return nil, "", err
	}
	return row, outcome, nil
}

// Current returns the child's streak count without mutating anything.
func (s *StreakService) Current(childID uint) (int, error) {
	row, err := s.streaks.GetOrCreate(childID)
	if err != nil {
		return 0, err
	}
	return row.Current, nil
}

// AdvanceLearning runs the same transition table against the learning
// streak and reports badge thresholds crossed by this event.
func (s *StreakService) AdvanceLearning(childID uint) (*models.LearningStreak, StreakOutcome, []string, error) {
	row, err := s.streaks.GetOrCreateLearning(childID)
	if err != nil {
		return nil, "", nil, err
	}
	before := row.Current
	next, outcome := advanceStreak(streakState{
		Current:         row.Current,
		LastDate:        row.LastDate,
		FreezeUsedToday: row.FreezeUsedToday,
		FreezeTokens:    row.FreezeTokens,
	}, s.Now())
	if outcome == StreakNoop {
		return row, outcome, nil, nil
	}
	row.Current = next.Current
	row.LastDate = next.LastDate
	row.FreezeUsedToday = next.FreezeUsedToday
	row.FreezeTokens = next.FreezeTokens
	if err := s.streaks.SaveLearning(row); err != nil {
		return nil, "", nil, err
	}
	return row, outcome, badgesCrossed(before, row.Current), nil
}

// badge thresholds for the learning streak
var streakBadges = map[int]string{
	7:  "week_learner",
	30: "month_learner",
}

func badgesCrossed(before, after int) []string {
	var unlocked []string
	for threshold, badge := range streakBadges {
		if before < threshold && after >= threshold {
			unlocked = append(unlocked, badge)
		}
	}
	return unlocked
}
