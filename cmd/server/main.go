package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vahid343/food-save-city/internal/config"
	"github.com/vahid343/food-save-city/internal/infra"
	"github.com/vahid343/food-save-city/internal/repository"
	"github.com/vahid343/food-save-city/internal/router"
	"github.com/vahid343/food-save-city/internal/service"
	"github.com/vahid343/food-save-city/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed the default categories on first boot.
	categoryRepo := repository.NewCategoryRepository(db)
	if err := service.NewCategoryService(categoryRepo).SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed categories")
	}

	// Async notification pipeline: SMTP behind a circuit breaker, jobs
	// queued in Redis, consumed by the worker pool.
	mailer := infra.NewMailer(cfg)
	smtpBreaker := infra.NewBreaker(5, 2, time.Minute)
	dispatcher := worker.NewDispatcher(rdb)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		"notify": worker.NewNotifyWorker(mailer, smtpBreaker),
	})

	// Daily sweep that emails a digest of products close to expiry.
	worker.StartExpiryScan(ctx, worker.ExpiryScanConfig{
		Products:    repository.NewProductRepository(db),
		History:     repository.NewHistoryRepository(db),
		Notifier:    dispatcher,
		NotifyEmail: cfg.NotifyEmail,
		Interval:    time.Duration(cfg.ScanIntervalHours) * time.Hour,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("food-save-city backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
