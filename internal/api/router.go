package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrkit/leave-system/internal/api/handler"
	"github.com/hrkit/leave-system/internal/api/middleware"
	"github.com/hrkit/leave-system/internal/core/ports"
	"github.com/hrkit/leave-system/internal/core/service"
	mongodb "github.com/hrkit/leave-system/internal/infrastructure/db/mongo"
	redisdb "github.com/hrkit/leave-system/internal/infrastructure/db/redis"
	"github.com/hrkit/leave-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("leave_system"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	leaveRepo := mongodb.NewLeaveRepository(db)
	tokenCache := redisdb.NewTokenCache(rdb)

	issuer := service.NewCredentialIssuer(cfg.JWTSecret)
	userService := service.NewUserService(userRepo, issuer, log)
	verificationService := service.NewVerificationService(userRepo, tokenCache, notifier, cfg.ResetURL, log)
	leaveService := service.NewLeaveService(leaveRepo, log)

	authHandler := handler.NewAuthHandler(userService, verificationService)
	profileHandler := handler.NewProfileHandler(userService)
	leaveHandler := handler.NewLeaveHandler(leaveService)

	// --- Auth routes (no credential required) ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/otp/request", authHandler.RequestOTP)
	e.POST("/auth/otp/verify", authHandler.VerifyOTP)
	e.POST("/auth/password/forgot", authHandler.ForgotPassword)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))
	v1.GET("/profile", profileHandler.Get)
	v1.PATCH("/profile", profileHandler.Update)
	v1.POST("/leaves", leaveHandler.Apply)
	v1.GET("/leaves", leaveHandler.List)
	v1.GET("/leaves/:id", leaveHandler.GetByID)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
