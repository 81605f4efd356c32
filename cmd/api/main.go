package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/healthsync-service/internal/ai"
	httptransport "github.com/spec-kit/healthsync-service/internal/api/http"
	"github.com/spec-kit/healthsync-service/internal/api/http/handlers"
	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/config"
	"github.com/spec-kit/healthsync-service/internal/events"
	"github.com/spec-kit/healthsync-service/internal/mailer"
	"github.com/spec-kit/healthsync-service/internal/observability"
	"github.com/spec-kit/healthsync-service/internal/persistence"
	"github.com/spec-kit/healthsync-service/internal/repository"
	"github.com/spec-kit/healthsync-service/internal/service"
	"github.com/spec-kit/healthsync-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	recordRepo := repository.NewHealthRecordRepository(pool)
	predictionRepo := repository.NewPredictionRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	doctorRepo := repository.NewDoctorRepository(pool)
	consultationRepo := repository.NewConsultationRepository(pool)
	revocationRepo := repository.NewRevocationRepository(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	mail := mailer.New(cfg.Email, logger)
	aiClient := ai.NewGeminiClient(cfg.AI)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:       userRepo,
		RevocationRepo: revocationRepo,
		Dispatcher:     dispatcher,
	})
	otpService := service.NewOTPService(cfg.OTP, service.OTPDependencies{
		OTPRepo:    otpRepo,
		UserRepo:   userRepo,
		Mailer:     mail,
		Dispatcher: dispatcher,
	})
	healthService := service.NewHealthService(recordRepo, predictionRepo, dispatcher)
	aiService := service.NewAIService(conversationRepo, aiClient)
	doctorService := service.NewDoctorService(doctorRepo, consultationRepo)
	adminService := service.NewAdminService(userRepo, predictionRepo, dispatcher)
	auditService := service.NewAuditService(dispatcher, logger)

	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revocationRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, otpService),
		Records:        handlers.NewRecordsHandler(healthService),
		AI:             handlers.NewAIHandler(aiService),
		Doctors:        handlers.NewDoctorsHandler(doctorService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
		RateLimit:      cfg.RateLimit,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
