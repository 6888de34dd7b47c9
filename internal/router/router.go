package router

import (
	"sprout/config"
	"sprout/internal/handler"
	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Setup wires repositories, services and the route table. Handlers are
// deliberately thin: all rules live in the services.
func Setup(cfg *config.Config, db *gorm.DB) (*gin.Engine, *service.AxionService, *service.RewardService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Repositories
	childRepo := repository.NewChildRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	axionRepo := repository.NewAxionRepository(db)
	gameRepo := repository.NewGameRepository(db)
	eventRepo := repository.NewEventLogRepository(db)

	// Services
	goalSvc := service.NewGoalService(walletRepo, ledgerRepo, goalRepo, eventRepo)
	streakSvc := service.NewStreakService(streakRepo)
	rewardSvc := service.NewRewardService(db, childRepo, taskRepo, walletRepo, ledgerRepo, eventRepo, goalSvc, streakSvc)
	coinRate, err := decimal.NewFromString(cfg.Game.CoinRateCents)
	if err != nil {
		coinRate = decimal.NewFromInt(5)
	}
	gameSvc := service.NewGameService(db, gameRepo, childRepo, walletRepo, ledgerRepo, eventRepo, goalSvc, streakSvc, coinRate, cfg.Game.DailyXPCap)
	missionSvc := service.NewMissionService(missionRepo, childRepo, taskRepo, goalRepo, streakRepo, gameSvc, eventRepo)
	axionSvc := service.NewAxionService(axionRepo, childRepo, taskRepo, streakRepo, goalSvc)

	// Handlers
	taskH := handler.NewTaskHandler(taskRepo, rewardSvc)
	walletH := handler.NewWalletHandler(walletRepo, goalSvc)
	goalH := handler.NewGoalHandler(goalRepo, goalSvc)
	missionH := handler.NewMissionHandler(missionSvc)
	axionH := handler.NewAxionHandler(axionSvc)
	gameH := handler.NewGameHandler(gameSvc)

	api := r.Group("/api/v1/parents/:parent_id")
	{
		api.POST("/tasks", taskH.CreateTask)
		api.POST("/task-logs/:log_id/approve", taskH.Approve)
		api.POST("/task-logs/:log_id/reject", taskH.Reject)
		api.POST("/conversions/:conversion_id/approve", gameH.ApproveConversion)
		api.POST("/conversions/:conversion_id/reject", gameH.RejectConversion)

		child := api.Group("/children/:child_id")
		{
			child.POST("/task-logs", taskH.LogCompletion)
			child.POST("/wallet", walletH.Create)
			child.GET("/wallet/balance", walletH.GetBalance)
			child.POST("/goals", goalH.Create)
			child.GET("/goals", goalH.List)
			child.POST("/goals/sync", goalH.Sync)
			child.GET("/missions/today", missionH.Today)
			child.POST("/missions/today/complete", missionH.CompleteToday)
			child.GET("/axion", axionH.GetState)
			child.POST("/moods", axionH.LogMood)
			child.POST("/game/sessions", gameH.RecordSession)
			child.POST("/game/conversions", gameH.RequestConversion)
		}
	}
	return r, axionSvc, rewardSvc
}
