package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/seniorcare/admin-api/internal/config"
	appointmentHandler "github.com/seniorcare/admin-api/internal/handler/appointment"
	auditHandler "github.com/seniorcare/admin-api/internal/handler/audit"
	authHandler "github.com/seniorcare/admin-api/internal/handler/auth"
	caregiverHandler "github.com/seniorcare/admin-api/internal/handler/caregiver"
	documentHandler "github.com/seniorcare/admin-api/internal/handler/document"
	elderlyHandler "github.com/seniorcare/admin-api/internal/handler/elderly"
	familyMemberHandler "github.com/seniorcare/admin-api/internal/handler/familymember"
	healthHandler "github.com/seniorcare/admin-api/internal/handler/health"
	medicalHistoryHandler "github.com/seniorcare/admin-api/internal/handler/medicalhistory"
	medicationHandler "github.com/seniorcare/admin-api/internal/handler/medication"
	notificationHandler "github.com/seniorcare/admin-api/internal/handler/notification"
	organizationHandler "github.com/seniorcare/admin-api/internal/handler/organization"
	userHandler "github.com/seniorcare/admin-api/internal/handler/user"
	"github.com/seniorcare/admin-api/internal/middleware"
	"github.com/seniorcare/admin-api/internal/repository/postgres"
	"github.com/seniorcare/admin-api/internal/router"
	appointmentService "github.com/seniorcare/admin-api/internal/service/appointment"
	auditService "github.com/seniorcare/admin-api/internal/service/audit"
	authService "github.com/seniorcare/admin-api/internal/service/auth"
	caregiverService "github.com/seniorcare/admin-api/internal/service/caregiver"
	documentService "github.com/seniorcare/admin-api/internal/service/document"
	elderlyService "github.com/seniorcare/admin-api/internal/service/elderly"
	familyMemberService "github.com/seniorcare/admin-api/internal/service/familymember"
	medicalHistoryService "github.com/seniorcare/admin-api/internal/service/medicalhistory"
	medicationService "github.com/seniorcare/admin-api/internal/service/medication"
	notificationService "github.com/seniorcare/admin-api/internal/service/notification"
	organizationService "github.com/seniorcare/admin-api/internal/service/organization"
	userService "github.com/seniorcare/admin-api/internal/service/user"
	"github.com/seniorcare/admin-api/pkg/auth"
	"github.com/seniorcare/admin-api/pkg/logger"
	"github.com/seniorcare/admin-api/pkg/messaging/redis"
	"github.com/seniorcare/admin-api/pkg/security"
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

	// Repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	organizationRepo := postgres.NewOrganizationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	elderlyRepo := postgres.NewElderlyRepository(db)
	caregiverRepo := postgres.NewCaregiverRepository(db)
	familyMemberRepo := postgres.NewFamilyMemberRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	medicalHistoryRepo := postgres.NewMedicalHistoryRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Services
	hasher := security.NewBcryptHasher(0)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	auditSvc := auditService.NewService(auditRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, elderlyRepo, caregiverRepo, auditSvc)
	organizationSvc := organizationService.NewService(organizationRepo, auditSvc)
	userSvc := userService.NewService(userRepo, organizationRepo, hasher, auditSvc)
	elderlySvc := elderlyService.NewService(elderlyRepo, caregiverRepo, auditSvc)
	caregiverSvc := caregiverService.NewService(caregiverRepo, userRepo, auditSvc)
	familyMemberSvc := familyMemberService.NewService(familyMemberRepo, userRepo, elderlyRepo, auditSvc)
	documentSvc := documentService.NewService(documentRepo, elderlyRepo, auditSvc)
	medicationSvc := medicationService.NewService(medicationRepo, elderlyRepo, auditSvc)
	medicalHistorySvc := medicalHistoryService.NewService(medicalHistoryRepo, elderlyRepo, auditSvc)
	notificationSvc := notificationService.NewService(notificationRepo, userRepo, broker, auditSvc, appLogger)
	authSvc := authService.NewService(userRepo, organizationRepo, jwtSvc, hasher, auditSvc)

	// Router
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	r := router.NewRouter(authMiddleware, router.Handlers{
		Health:         healthHandler.NewHandler(db),
		Auth:           authHandler.NewHandler(authSvc),
		Organization:   organizationHandler.NewHandler(organizationSvc),
		User:           userHandler.NewHandler(userSvc),
		Elderly:        elderlyHandler.NewHandler(elderlySvc),
		Caregiver:      caregiverHandler.NewHandler(caregiverSvc),
		FamilyMember:   familyMemberHandler.NewHandler(familyMemberSvc),
		Appointment:    appointmentHandler.NewHandler(appointmentSvc),
		Document:       documentHandler.NewHandler(documentSvc),
		Medication:     medicationHandler.NewHandler(medicationSvc),
		MedicalHistory: medicalHistoryHandler.NewHandler(medicalHistorySvc),
		Notification:   notificationHandler.NewHandler(notificationSvc),
		Audit:          auditHandler.NewHandler(auditSvc),
	}, router.Config{
		RateLimit:  rate.Limit(100),
		RateBurst:  200,
		Timeout:    cfg.Server.Timeout(),
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
