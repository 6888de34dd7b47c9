package service_test

import (
	"testing"
	"time"

	"sprout/internal/database"
	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database with the same
// gorm settings production uses. TranslateError matters here because
// the mission conflict path depends on it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	parent   *models.Parent
	child    *models.Child
	wallet   *models.Wallet
	children *repository.ChildRepository
	wallets  *repository.WalletRepository
	ledger   *repository.LedgerRepository
	goalRepo *repository.GoalRepository
	tasks    *repository.TaskRepository
	streaks  *repository.StreakRepository
	missions *repository.MissionRepository
	axion    *repository.AxionRepository
	game     *repository.GameRepository
	events   *repository.EventLogRepository

	goalSvc    *service.GoalService
	streakSvc  *service.StreakService
	rewardSvc  *service.RewardService
	gameSvc    *service.GameService
	missionSvc *service.MissionService
	axionSvc   *service.AxionService
}

// testDay is the fixed "today" all clocks in a fixture return.
var testDay = time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC) // a Wednesday

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{db: db}
	f.children = repository.NewChildRepository(db)
	f.wallets = repository.NewWalletRepository(db)
	f.ledger = repository.NewLedgerRepository(db)
	f.goalRepo = repository.NewGoalRepository(db)
	f.tasks = repository.NewTaskRepository(db)
	f.streaks = repository.NewStreakRepository(db)
	f.missions = repository.NewMissionRepository(db)
	f.axion = repository.NewAxionRepository(db)
	f.game = repository.NewGameRepository(db)
	f.events = repository.NewEventLogRepository(db)

	f.goalSvc = service.NewGoalService(f.wallets, f.ledger, f.goalRepo, f.events)
	f.streakSvc = service.NewStreakService(f.streaks)
	f.streakSvc.Now = func() time.Time { return testDay }
	f.rewardSvc = service.NewRewardService(db, f.children, f.tasks, f.wallets, f.ledger, f.events, f.goalSvc, f.streakSvc)
	f.rewardSvc.Now = func() time.Time { return testDay }
	f.gameSvc = service.NewGameService(db, f.game, f.children, f.wallets, f.ledger, f.events, f.goalSvc, f.streakSvc,
		decimal.NewFromInt(5), 500)
	f.gameSvc.Now = func() time.Time { return testDay }
	f.missionSvc = service.NewMissionService(f.missions, f.children, f.tasks, f.goalRepo, f.streaks, f.gameSvc, f.events)
	f.missionSvc.Now = func() time.Time { return testDay }
	f.axionSvc = service.NewAxionService(f.axion, f.children, f.tasks, f.streaks, f.goalSvc)
	f.axionSvc.Now = func() time.Time { return testDay }

	f.parent = &models.Parent{Email: "parent@example.com", Name: "Pat"}
	require.NoError(t, db.Create(f.parent).Error)
	f.child = &models.Child{ParentID: f.parent.ID, Name: "Sam"}
	require.NoError(t, db.Create(f.child).Error)

	wallet, err := f.wallets.Create(f.parent.ID, f.child.ID, "USD", map[string]int{
		domain.PotSpend:  50,
		domain.PotSave:   30,
		domain.PotDonate: 20,
	})
	require.NoError(t, err)
	f.wallet = wallet
	return f
}

// earn appends an EARN transaction with the wallet's split metadata.
func (f *fixture) earn(t *testing.T, amount int64, metadata string) {
	t.Helper()
	require.NoError(t, f.ledger.Append(&models.LedgerTransaction{
		ParentID:    f.parent.ID,
		WalletID:    f.wallet.ID,
		Type:        domain.TxTypeEarn,
		AmountCents: amount,
		Metadata:    metadata,
	}))
}

// stubRand replays queued rolls; it panics if the engine asks for more
// than the test queued, which would itself be a bug worth seeing.
type stubRand struct {
	floats []float64
	ints   []int
}

func (s *stubRand) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *stubRand) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}
