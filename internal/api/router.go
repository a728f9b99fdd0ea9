package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/propfinder/marketplace-api/docs"
	"github.com/propfinder/marketplace-api/internal/api/handler"
	"github.com/propfinder/marketplace-api/internal/api/middleware"
	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/service"
	"github.com/propfinder/marketplace-api/internal/infrastructure/config"
	mongorepo "github.com/propfinder/marketplace-api/internal/infrastructure/db/mongo"
	redisdedup "github.com/propfinder/marketplace-api/internal/infrastructure/db/redis"
	"github.com/propfinder/marketplace-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered. The returned
// Dispatcher must be started by the caller before the server accepts traffic.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	documentRepo := mongorepo.NewDocumentRepository(db)
	propertyRepo := mongorepo.NewPropertyRepository(db)
	viewRepo := mongorepo.NewViewRepository(db)
	dedup := redisdedup.NewViewDedupChecker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	verificationService := service.NewVerificationService(documentRepo, userRepo, nil, log)
	propertyService := service.NewPropertyService(propertyRepo, verificationService, log)
	analyticsService := service.NewAnalyticsService(propertyRepo, viewRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.ViewWorkers, analyticsService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	analyticsHandler := handler.NewAnalyticsHandler(dispatcher, analyticsService)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Public marketplace routes ---
	v1.GET("/properties", propertyHandler.List)
	v1.GET("/properties/:id", propertyHandler.Get)
	v1.POST("/properties/:id/views", analyticsHandler.RecordView, optionalAuth)

	// --- Authenticated listing routes ---
	v1.POST("/properties", propertyHandler.Create, auth, middleware.ListerRoles())
	v1.PATCH("/properties/:id/status", propertyHandler.UpdateStatus, auth)
	v1.DELETE("/properties/:id", propertyHandler.Delete, auth)

	my := v1.Group("/my", auth)
	my.GET("/properties", propertyHandler.ListMine)
	my.GET("/analytics", analyticsHandler.MySummary)

	// --- Verification workflow ---
	verification := v1.Group("/verification", auth)
	verification.GET("/status", verificationHandler.Status)
	verification.POST("/documents", verificationHandler.Submit, middleware.ListerRoles())
	verification.GET("/documents", verificationHandler.ListMine)

	// --- Admin routes ---
	admin := v1.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/verification/documents", verificationHandler.AdminList)
	admin.PATCH("/verification/documents/:id", verificationHandler.AdminReview)
	admin.GET("/analytics", analyticsHandler.AdminSummary)

	return e, dispatcher
}
