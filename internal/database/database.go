package database

import (
	"sprout/config"
	"sprout/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		// duplicate-key errors must surface as gorm.ErrDuplicatedKey:
		// daily-mission creation depends on catching them
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Parent{},
		&models.Child{},
		&models.Wallet{},
		&models.PotAllocation{},
		&models.LedgerTransaction{},
		&models.SavingGoal{},
		&models.Task{},
		&models.TaskLog{},
		&models.Streak{},
		&models.LearningStreak{},
		&models.DailyMission{},
		&models.AxionProfile{},
		&models.DailyMood{},
		&models.GameProfile{},
		&models.CoinConversion{},
		&models.EventLog{},
	)
}
