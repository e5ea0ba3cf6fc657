package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/drivehq/drive-api/internal/api/handler"
	"github.com/drivehq/drive-api/internal/api/middleware"
	"github.com/drivehq/drive-api/internal/core/ports"
	"github.com/drivehq/drive-api/internal/core/service"
	"github.com/drivehq/drive-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/drivehq/drive-api/internal/infrastructure/db/redis"
	"github.com/drivehq/drive-api/internal/pkg/config"
	"github.com/drivehq/drive-api/internal/pkg/token"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	DB      *sql.DB
	Redis   *redis.Client
	Objects ports.ObjectStore
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("drive"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(deps.DB)
	fileRepo := postgres.NewFileRepository(deps.DB)
	idem := redisinfra.NewIdempotencyChecker(deps.Redis)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.ProviderSecret, cfg.TokenTTL, cfg.ProviderTokenMode, deps.Log)
	fileService := service.NewFileService(fileRepo, deps.Objects, idem, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	fileHandler := handler.NewFileHandler(fileService)
	storageHandler := handler.NewStorageHandler(fileService)

	verifier := token.NewVerifier(cfg.JWTSecret, cfg.ProviderSecret)
	authMiddleware := middleware.Auth(verifier)

	// --- Auth routes ---
	e.POST("/token-exchange", authHandler.Exchange)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- File routes (all protected) ---
	files := e.Group("/v1/files", authMiddleware)
	files.GET("", fileHandler.List)
	files.POST("", fileHandler.Create)
	files.GET("/:id", fileHandler.Get)
	files.DELETE("/:id", fileHandler.Delete)
	files.GET("/:id/download", fileHandler.Download)

	// --- Storage routes (all protected) ---
	storage := e.Group("/v1/storage", authMiddleware)
	storage.POST("/presigned-url", storageHandler.PresignUpload)
	storage.GET("/presigned-url/*", storageHandler.PresignDownload)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
