package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sprout/config"
	"sprout/internal/database"
	"sprout/internal/router"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	engine, axionSvc, rewardSvc := router.Setup(cfg, db)

	// Nightly companion refresh and the weekly allowance run.
	jobs := cron.New()
	if _, err := jobs.AddFunc(cfg.Jobs.AxionNightlyCron, func() {
		n, err := axionSvc.RunNightly(cfg.Jobs.BatchSize)
		if err != nil {
			log.Error().Err(err).Msg("axion nightly run aborted")
			return
		}
		log.Info().Int("children", n).Msg("axion nightly run done")
	}); err != nil {
		log.Fatal().Err(err).Msg("axion cron")
	}
	if _, err := jobs.AddFunc(cfg.Jobs.AllowanceCron, func() {
		n, err := rewardSvc.RunWeeklyAllowance(cfg.Jobs.BatchSize)
		if err != nil {
			log.Error().Err(err).Msg("allowance run aborted")
			return
		}
		log.Info().Int("credited", n).Msg("allowance run done")
	}); err != nil {
		log.Fatal().Err(err).Msg("allowance cron")
	}
	jobs.Start()
	defer jobs.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
