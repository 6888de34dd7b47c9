package service

import (
	"errors"
	"time"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/pkg/economy"
	"sprout/pkg/persona"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrMoodAlreadyLogged = errors.New("mood already logged today")

// MoodInputs is everything ResolveMood looks at.
type MoodInputs struct {
	Streak               int
	WeeklyCompletionRate int // percent, 0..100
	LastMood             string
	GoalProgressPercent  int
	InactivityDays       int
}

// ResolveMood collapses the inputs into one mood by strict priority.
// First match wins, there is no scoring. The ordering is a contract:
// a child with an 82% week and five idle days is CELEBRATING, because
// celebration outranks concern. Reordering these rules changes the
// product.
func ResolveMood(in MoodInputs) string {
	switch {
	case in.WeeklyCompletionRate >= 80:
		return domain.MoodCelebrating
	case in.Streak >= 7:
		return domain.MoodProud
	case in.InactivityDays >= 2:
		return domain.MoodConcerned
	case in.GoalProgressPercent >= 80:
		return domain.MoodExcited
	case in.LastMood == domain.ChildMoodSad,
		in.LastMood == domain.ChildMoodAngry,
		in.LastMood == domain.ChildMoodTired:
		return domain.MoodConcerned
	default:
		return domain.MoodNeutral
	}
}

// AxionState is the full companion projection returned to clients.
type AxionState struct {
	Profile     *models.AxionProfile `json:"profile"`
	Personality persona.Personality  `json:"personality"`
	Traits      []string             `json:"traits"`
}

type AxionService struct {
	axion    *repository.AxionRepository
	children *repository.ChildRepository
	tasks    *repository.TaskRepository
	streaks  *repository.StreakRepository
	goals    *GoalService

	Now func() time.Time
}

func NewAxionService(
	axion *repository.AxionRepository,
	children *repository.ChildRepository,
	tasks *repository.TaskRepository,
	streaks *repository.StreakRepository,
	goals *GoalService,
) *AxionService {
	return &AxionService{
		axion:    axion,
		children: children,
		tasks:    tasks,
		streaks:  streaks,
		goals:    goals,
		Now:      time.Now,
	}
}

// ComputeState recomputes the companion from live signals: the ISO-week
// completion rate, current streak, latest logged mood, days since the
// last task log and progress toward the active goal. The profile's
// stage, mood and last_interaction_at are persisted; personality and
// traits are re-derived from the stable seed on the way out.
func (s *AxionService) ComputeState(parentID, childID uint) (*AxionState, error) {
	child, err := s.children.GetByID(parentID, childID)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	weekStart, weekEnd := domain.ISOWeekBounds(now)
	approved, total, err := s.tasks.WeeklyCounts(parentID, childID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	rate := 0
	if total > 0 {
		rate = int(approved * 100 / total)
	}

	streak, err := s.streaks.GetOrCreate(childID)
	if err != nil {
		return nil, err
	}
	lastMood, err := s.axion.LatestMood(childID)
	if err != nil {
		return nil, err
	}
	lastLogAt, err := s.tasks.LastLogAt(parentID, childID)
	if err != nil {
		return nil, err
	}
	// a child with no task history is "inactive" since account creation
	inactiveSince := child.CreatedAt
	if lastLogAt != nil {
		inactiveSince = *lastLogAt
	}
	inactivity := domain.DaysBetween(inactiveSince, now)

	progress, err := s.goals.ActiveGoalProgress(parentID, childID)
	if err != nil {
		return nil, err
	}

	profile, err := s.axion.GetOrCreate(childID)
	if err != nil {
		return nil, err
	}
	profile.Stage = economy.AvatarStage(child.XPTotal)
	profile.MoodState = ResolveMood(MoodInputs{
		Streak:               streak.Current,
		WeeklyCompletionRate: rate,
		LastMood:             lastMood,
		GoalProgressPercent:  progress,
		InactivityDays:       inactivity,
	})
	profile.LastInteractionAt = &now
	if err := s.axion.Save(profile); err != nil {
		return nil, err
	}

	return &AxionState{
		Profile:     profile,
		Personality: persona.FromSeed(profile.PersonalitySeed),
		Traits:      persona.Traits(profile.PersonalitySeed, profile.Stage, profile.MoodState),
	}, nil
}

// LogMood records the child's daily mood check-in, one per day.
func (s *AxionService) LogMood(parentID, childID uint, mood string) (*models.DailyMood, error) {
	if _, err := s.children.GetByID(parentID, childID); err != nil {
		return nil, err
	}
	entry := &models.DailyMood{
		ChildID:  childID,
		MoodDate: domain.DayKey(s.Now()),
		Mood:     mood,
	}
	if err := s.axion.LogMood(entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMoodAlreadyLogged
		}
		return nil, err
	}
	return entry, nil
}

// RunNightly recomputes every non-deleted child's companion state in id
// batches. Per-child failures are logged and skipped so one bad row
// cannot stall the sweep. Returns the number of children refreshed.
func (s *AxionService) RunNightly(batchSize int) (int, error) {
	refreshed := 0
	var afterID uint
	for {
		children, err := s.children.ListBatch(afterID, batchSize)
		if err != nil {
			return refreshed, err
		}
		if len(children) == 0 {
			return refreshed, nil
		}
		for _, child := range children {
			afterID = child.ID
			if _, err := s.ComputeState(child.ParentID, child.ID); err != nil {
				log.Warn().Err(err).Uint("child_id", child.ID).Msg("axion nightly refresh failed")
				continue
			}
			refreshed++
		}
	}
}
