package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_market/internal/app"
	"github.com/Freeeeeet/tutor_market/internal/config"
	"github.com/Freeeeeet/tutor_market/internal/metrics"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/notify"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogFile)
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.NotificationsEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.AdminChatID)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
	}

	engine := app.NewEngine(app.PostgresStores(pool), app.Options{
		Notifier:   notifier,
		Metrics:    metrics.New(prometheus.DefaultRegisterer),
		BcryptCost: cfg.BcryptCost,
	}, logger)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, prometheus.DefaultGatherer, logger.Named("metrics")); err != nil {
				logger.Error("Metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	system := &model.Identity{Name: "scheduler", Role: model.RoleAdmin}
	scheduler := app.NewScheduler(engine.Approval, system, notifier, cfg.ReminderInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Sugar().Infow("Tutor market engine ready",
		"environment", cfg.Environment,
		"notifications", cfg.NotificationsEnabled())

	<-ctx.Done()
	logger.Info("Shutting down")
}
