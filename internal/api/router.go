package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamops/opstracker/internal/api/handler"
	"github.com/teamops/opstracker/internal/core/service"
	mongodb "github.com/teamops/opstracker/internal/infrastructure/db/mongo"
	redisdb "github.com/teamops/opstracker/internal/infrastructure/db/redis"
)

// Options carries the external dependencies the router wires together.
type Options struct {
	Mongo  *mongo.Database
	Redis  *redis.Client // optional; nil disables the snapshot cache
	Cache  *redisdb.SnapshotCache
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("opstracker"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	recordRepo := mongodb.NewRecordRepository(opts.Mongo)

	authService := service.NewAuthService(userRepo, opts.Logger)
	userService := service.NewUserService(userRepo, recordRepo, opts.Logger)
	recordService := service.NewRecordService(recordRepo, userRepo, opts.Logger)
	reportService := service.NewReportService(userRepo, recordRepo, opts.Logger)

	var cache handler.SnapshotCache
	if opts.Cache != nil {
		cache = opts.Cache
	}

	authHandler := handler.NewAuthHandler(authService)
	dataHandler := handler.NewDataHandler(userService, recordService, cache, opts.Logger)
	userHandler := handler.NewUserHandler(userService, cache, opts.Logger)
	recordHandler := handler.NewRecordHandler(recordService, cache, opts.Logger)
	reportHandler := handler.NewReportHandler(reportService)

	// --- API routes ---
	e.GET("/api/data", dataHandler.Get)
	e.POST("/api/login", authHandler.Login)

	e.GET("/api/users", userHandler.List)
	e.POST("/api/users", userHandler.Create)
	e.PUT("/api/users", userHandler.Update)
	e.PATCH("/api/users", userHandler.Update)
	e.DELETE("/api/users", userHandler.Delete)

	e.GET("/api/records", recordHandler.List)
	e.POST("/api/records", recordHandler.Create)
	e.PUT("/api/records", recordHandler.Update)
	e.DELETE("/api/records", recordHandler.Delete)

	e.GET("/api/reports/overview", reportHandler.Overview)
	e.GET("/api/reports/overview/pdf", reportHandler.OverviewPDF)
	e.GET("/api/reports/users/:id/daily", reportHandler.UserChart)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
