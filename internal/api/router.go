package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sitedesk/admin-api/docs"
	"github.com/sitedesk/admin-api/internal/api/handler"
	"github.com/sitedesk/admin-api/internal/api/middleware"
	"github.com/sitedesk/admin-api/internal/core/service"
	mongodb "github.com/sitedesk/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sitedesk/admin-api/internal/infrastructure/db/redis"
	"github.com/sitedesk/admin-api/internal/infrastructure/http/handlers"
	"github.com/sitedesk/admin-api/internal/session"
)

// NewRouter builds and returns the dashboard API Echo instance with all
// routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	sessions *session.Store,
	resolver *session.RoleResolver,
	verifier service.VerifyEnqueuer,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sitedesk"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	siteRepo := mongodb.NewSiteRepository(db)
	guard := redisdb.NewSubmissionGuard(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, siteRepo, log)
	siteService := service.NewSiteService(siteRepo, guard, verifier, log)
	statsService := service.NewStatsService(userRepo, siteRepo)

	authHandler := handler.NewAuthHandler(authService, sessions, resolver)
	userHandler := handler.NewUserHandler(userService)
	siteHandler := handler.NewSiteHandler(siteService)
	statsHandler := handler.NewStatsHandler(statsService)

	authMiddleware := middleware.Auth(jwtSecret)
	adminMiddleware := middleware.RequireAdmin(resolver)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/me", authHandler.Me)
	v1.GET("/sites", siteHandler.ListOwn)
	v1.POST("/sites", siteHandler.Submit)
	v1.DELETE("/sites/:id", siteHandler.Delete)

	// --- Admin routes (role re-resolved from the profile store per request) ---
	admin := v1.Group("", adminMiddleware)
	admin.GET("/users", userHandler.List)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.PATCH("/users/:id/status", userHandler.UpdateStatus)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/admin/sites", siteHandler.ListAll)
	admin.POST("/sites/:id/review", siteHandler.Review)
	admin.GET("/stats", statsHandler.Overview)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
