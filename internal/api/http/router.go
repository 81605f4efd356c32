package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/healthsync-service/internal/api/http/handlers"
	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/config"
	"github.com/spec-kit/healthsync-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Records        *handlers.RecordsHandler
	AI             *handlers.AIHandler
	Doctors        *handlers.DoctorsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	if cfg.RateLimit.MaxRequests > 0 {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.MaxRequests,
			Expiration: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		}))
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/send-otp", cfg.Auth.SendOTP)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.Profile)
	authGroup.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateProfile)

	predict := api.Group("/predict", cfg.AuthMiddleware.Handle)
	predict.Post("/health-check", cfg.Records.SubmitHealthCheck)
	predict.Get("/health-check", cfg.Records.ListHealthChecks)
	predict.Post("/:disease", cfg.Records.SubmitPrediction)

	api.Get("/history", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser), cfg.Records.History)

	aiGroup := api.Group("/ai", cfg.AuthMiddleware.Handle)
	aiGroup.Post("/conversations", cfg.AI.CreateConversation)
	aiGroup.Get("/conversations", cfg.AI.ListConversations)
	aiGroup.Get("/conversations/:id", cfg.AI.GetConversation)
	aiGroup.Delete("/conversations/:id", cfg.AI.DeleteConversation)
	aiGroup.Post("/conversations/:id/messages", cfg.AI.SendMessage)

	doctors := api.Group("/doctors", cfg.AuthMiddleware.Handle)
	doctors.Get("/", cfg.Doctors.ListDoctors)
	doctors.Get("/:id", cfg.Doctors.GetDoctor)
	doctors.Post("/:id/consultations", cfg.Doctors.StartConsultation)

	consultations := api.Group("/consultations", cfg.AuthMiddleware.Handle)
	consultations.Get("/", cfg.Doctors.ListConsultations)
	consultations.Get("/:id", cfg.Doctors.GetConsultation)
	consultations.Delete("/:id", cfg.Doctors.EndConsultation)
	consultations.Post("/:id/messages", cfg.Doctors.SendConsultationMessage)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Delete("/history/:id", cfg.Admin.DeleteUserHistory)
	admin.Put("/promote/:id", cfg.Admin.PromoteUser)
	admin.Get("/stats", cfg.Admin.Stats)
}
