package service_test

import (
	"testing"

	"sprout/internal/models"
	"sprout/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStreak(t *testing.T, f *fixture, current int, lastDaysAgo int, tokens int, usedToday bool) {
	t.Helper()
	row, err := f.streaks.GetOrCreate(f.child.ID)
	require.NoError(t, err)
	last := testDay.AddDate(0, 0, -lastDaysAgo)
	row.Current = current
	row.LastDate = &last
	row.FreezeTokens = tokens
	row.FreezeUsedToday = usedToday
	require.NoError(t, f.streaks.Save(row))
}

func TestStreakAdvance_FirstEver(t *testing.T) {
	f := newFixture(t)
	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakStarted, outcome)
	assert.Equal(t, 1, row.Current)
	require.NotNil(t, row.LastDate)
	assert.Equal(t, "2026-03-11", row.LastDate.Format("2006-01-02"))
}

func TestStreakAdvance_SameDayIsNoop(t *testing.T) {
	f := newFixture(t)
	seedStreak(t, f, 5, 0, 2, true)

	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakNoop, outcome)
	assert.Equal(t, 5, row.Current)
	assert.Equal(t, 2, row.FreezeTokens)
	// freeze_used_today untouched by the no-op
	assert.True(t, row.FreezeUsedToday)
}

func TestStreakAdvance_NextDayIncrements(t *testing.T) {
	f := newFixture(t)
	seedStreak(t, f, 5, 1, 0, false)

	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakExtended, outcome)
	assert.Equal(t, 6, row.Current)
	assert.Equal(t, 0, row.FreezeTokens)
}

func TestStreakAdvance_NextDayIncrementsEvenWithTokens(t *testing.T) {
	// gap==1 never spends a token
	f := newFixture(t)
	seedStreak(t, f, 3, 1, 2, false)

	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakExtended, outcome)
	assert.Equal(t, 4, row.Current)
	assert.Equal(t, 2, row.FreezeTokens)
}

func TestStreakAdvance_GapWithTokenFreezes(t *testing.T) {
	f := newFixture(t)
	seedStreak(t, f, 8, 2, 1, false)

	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakFrozen, outcome)
	assert.Equal(t, 8, row.Current, "streak preserved")
	assert.Equal(t, 0, row.FreezeTokens)
	assert.True(t, row.FreezeUsedToday)
}

func TestStreakAdvance_GapWithoutTokenResets(t *testing.T) {
	f := newFixture(t)
	seedStreak(t, f, 8, 2, 0, false)

	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakReset, outcome)
	assert.Equal(t, 1, row.Current)
	assert.False(t, row.FreezeUsedToday)
}

func TestStreakAdvance_FreezeUsedTodayClearsNextDay(t *testing.T) {
	// token spent yesterday; today's consecutive event must clear the
	// flag while extending
	f := newFixture(t)
	seedStreak(t, f, 8, 1, 0, true)

	row, outcome, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakExtended, outcome)
	assert.Equal(t, 9, row.Current)
	assert.False(t, row.FreezeUsedToday)
}

func TestStreakAdvance_Persisted(t *testing.T) {
	f := newFixture(t)
	seedStreak(t, f, 2, 1, 0, false)

	_, _, err := f.streakSvc.Advance(f.child.ID)
	require.NoError(t, err)

	var stored models.Streak
	require.NoError(t, f.db.Where("child_id = ?", f.child.ID).First(&stored).Error)
	assert.Equal(t, 3, stored.Current)
}

func TestLearningStreak_BadgeUnlocks(t *testing.T) {
	f := newFixture(t)
	row, err := f.streaks.GetOrCreateLearning(f.child.ID)
	require.NoError(t, err)
	last := testDay.AddDate(0, 0, -1)
	row.Current = 6
	row.LastDate = &last
	require.NoError(t, f.streaks.SaveLearning(row))

	updated, outcome, badges, err := f.streakSvc.AdvanceLearning(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakExtended, outcome)
	assert.Equal(t, 7, updated.Current)
	assert.Equal(t, []string{"week_learner"}, badges)
}

func TestLearningStreak_SameTransitionTable(t *testing.T) {
	f := newFixture(t)
	row, err := f.streaks.GetOrCreateLearning(f.child.ID)
	require.NoError(t, err)
	last := testDay.AddDate(0, 0, -3)
	row.Current = 10
	row.LastDate = &last
	row.FreezeTokens = 1
	require.NoError(t, f.streaks.SaveLearning(row))

	updated, outcome, badges, err := f.streakSvc.AdvanceLearning(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StreakFrozen, outcome)
	assert.Equal(t, 10, updated.Current)
	assert.Equal(t, 0, updated.FreezeTokens)
	assert.Empty(t, badges)
}
