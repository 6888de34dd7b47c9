package service_test

import (
	"testing"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDaily_IdempotentPerDay(t *testing.T) {
	f := newFixture(t)
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{0, 0}}

	first, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)

	// second call must not roll again; the stub has no rolls left
	f.missionSvc.Rand = &stubRand{}
	second, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.DailyMission{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateDaily_InsertConflictReturnsExistingRow(t *testing.T) {
	f := newFixture(t)
	winner := &models.DailyMission{
		ParentID: f.parent.ID, ChildID: f.child.ID,
		MissionDate: "2026-03-11", Topic: service.TopicMood,
		Rarity: domain.RarityNormal, XPReward: 10, CoinReward: 3,
		Status: domain.MissionPending,
	}
	require.NoError(t, f.db.Create(winner).Error)

	// simulates the loser of the race inserting after the winner
	loser := &models.DailyMission{
		ParentID: f.parent.ID, ChildID: f.child.ID,
		MissionDate: "2026-03-11", Topic: service.TopicMood,
		Rarity: domain.RarityEpic, XPReward: 60, CoinReward: 30,
		Status: domain.MissionPending,
	}
	got, err := f.missions.Insert(loser)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, domain.RarityNormal, got.Rarity, "winner's roll stands")
}

func TestGenerateDaily_TopicPriority(t *testing.T) {
	f := newFixture(t)
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{0, 0}}

	// default: nothing pending, nothing locked → mood check-in
	mission, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, service.TopicMood, mission.Topic)

	// a locked goal outranks the default
	second := &models.Child{ParentID: f.parent.ID, Name: "Lee"}
	require.NoError(t, f.db.Create(second).Error)
	require.NoError(t, f.goalRepo.Create(&models.SavingGoal{
		ParentID: f.parent.ID, ChildID: second.ID,
		Name: "robot", TargetCents: 1000, IsLocked: true,
	}))
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{0, 0}}
	mission, err = f.missionSvc.GenerateDaily(f.parent.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, service.TopicGoal, mission.Topic)

	// a pending task log outranks the goal
	third := &models.Child{ParentID: f.parent.ID, Name: "Ash"}
	require.NoError(t, f.db.Create(third).Error)
	task := &models.Task{ParentID: f.parent.ID, Name: "dishes", Difficulty: domain.DifficultyEasy, Weight: 1}
	require.NoError(t, f.tasks.CreateTask(task))
	require.NoError(t, f.tasks.CreateLog(&models.TaskLog{
		ParentID: f.parent.ID, ChildID: third.ID, TaskID: task.ID,
		Status: domain.TaskLogPending, LogDate: "2026-03-11",
	}))
	require.NoError(t, f.goalRepo.Create(&models.SavingGoal{
		ParentID: f.parent.ID, ChildID: third.ID,
		Name: "kite", TargetCents: 500, IsLocked: true,
	}))
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{0, 0}}
	mission, err = f.missionSvc.GenerateDaily(f.parent.ID, third.ID)
	require.NoError(t, err)
	assert.Equal(t, service.TopicPendingTask, mission.Topic)
}

func TestGenerateDaily_RarityTables(t *testing.T) {
	tests := []struct {
		name   string
		streak int
		roll   float64
		want   string
	}{
		{"short streak always normal", 0, 0.01, domain.RarityNormal},
		{"six days still normal", 6, 0.01, domain.RarityNormal},
		{"week streak special band", 7, 0.39, domain.RaritySpecial},
		{"week streak normal band", 7, 0.40, domain.RarityNormal},
		{"long streak epic band", 21, 0.19, domain.RarityEpic},
		{"long streak special band", 21, 0.59, domain.RaritySpecial},
		{"long streak normal band", 21, 0.60, domain.RarityNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.streak > 0 {
				seedStreak(t, f, tt.streak, 0, 0, false)
			}
			f.missionSvc.Rand = &stubRand{floats: []float64{tt.roll}, ints: []int{0, 0}}
			mission, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mission.Rarity)
		})
	}
}

func TestGenerateDaily_RewardRolls(t *testing.T) {
	f := newFixture(t)
	seedStreak(t, f, 30, 0, 0, false)
	// roll EPIC, then max base rolls: xp 10+10=20, coins 3+7=10
	f.missionSvc.Rand = &stubRand{floats: []float64{0.1}, ints: []int{10, 7}}

	mission, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RarityEpic, mission.Rarity)
	assert.Equal(t, 60, mission.XPReward)   // 20 * 3
	assert.Equal(t, 30, mission.CoinReward) // 10 * 3
}

func TestGenerateDaily_UnknownChild(t *testing.T) {
	f := newFixture(t)
	_, err := f.missionSvc.GenerateDaily(f.parent.ID, 9999)
	assert.Error(t, err)
}

func TestGenerateDaily_WrongParentCannotSeeMission(t *testing.T) {
	f := newFixture(t)
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{0, 0}}
	_, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)

	stranger := &models.Parent{Email: "stranger@example.com", Name: "Kim"}
	require.NoError(t, f.db.Create(stranger).Error)

	// another tenant must not read or complete this child's mission
	_, err = f.missionSvc.GenerateDaily(stranger.ID, f.child.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.missionSvc.CompleteToday(stranger.ID, f.child.ID)
	assert.ErrorIs(t, err, service.ErrNoMissionToday)
}

func TestCompleteToday(t *testing.T) {
	f := newFixture(t)
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{5, 4}}
	mission, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionPending, mission.Status)

	result, err := f.missionSvc.CompleteToday(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionCompleted, result.Mission.Status)
	assert.Equal(t, int64(mission.XPReward), result.XPGranted)
	assert.Equal(t, int64(mission.CoinReward), result.CoinsEarned)

	profile, err := f.game.GetOrCreateProfile(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(mission.CoinReward), profile.Coins)
	assert.Equal(t, int64(mission.XPReward), profile.XPTotal)
}

func TestCompleteToday_SecondCallPaysNothing(t *testing.T) {
	f := newFixture(t)
	f.missionSvc.Rand = &stubRand{floats: []float64{0.9}, ints: []int{5, 4}}
	_, err := f.missionSvc.GenerateDaily(f.parent.ID, f.child.ID)
	require.NoError(t, err)

	first, err := f.missionSvc.CompleteToday(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	require.Positive(t, first.CoinsEarned)

	second, err := f.missionSvc.CompleteToday(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Zero(t, second.CoinsEarned)
	assert.Zero(t, second.XPGranted)

	profile, err := f.game.GetOrCreateProfile(f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, first.CoinsEarned, profile.Coins, "no double payout")
}

func TestCompleteToday_NoMission(t *testing.T) {
	f := newFixture(t)
	_, err := f.missionSvc.CompleteToday(f.parent.ID, f.child.ID)
	assert.ErrorIs(t, err, service.ErrNoMissionToday)
}
