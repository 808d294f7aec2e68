package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/seniorcare/admin-api/internal/config"
	"github.com/seniorcare/admin-api/internal/email"
	"github.com/seniorcare/admin-api/internal/repository/postgres"
	auditService "github.com/seniorcare/admin-api/internal/service/audit"
	notificationService "github.com/seniorcare/admin-api/internal/service/notification"
	"github.com/seniorcare/admin-api/internal/worker"
	"github.com/seniorcare/admin-api/pkg/logger"
	"github.com/seniorcare/admin-api/pkg/messaging/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	auditRepo := postgres.NewAuditRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	auditSvc := auditService.NewService(auditRepo)
	notificationSvc := notificationService.NewService(notificationRepo, userRepo, broker, auditSvc, appLogger)
	emailSvc := email.NewSMTPService(cfg.SMTP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupWorker := worker.NewAuditCleanupWorker(
		auditSvc,
		cfg.Audit.RetentionDays,
		time.Duration(cfg.Audit.CleanupInterval)*time.Hour,
		appLogger,
	)
	go cleanupWorker.Start(ctx)

	deliveryWorker := worker.NewNotificationDeliveryWorker(broker, emailSvc, notificationSvc, appLogger)
	go func() {
		if err := deliveryWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("notification delivery worker stopped")
		}
	}()

	log.Info().Msg("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("worker shutting down")
	cancel()
}
