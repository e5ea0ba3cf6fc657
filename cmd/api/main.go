package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/drivehq/drive-api/internal/api"
	"github.com/drivehq/drive-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/drivehq/drive-api/internal/infrastructure/db/redis"
	s3store "github.com/drivehq/drive-api/internal/infrastructure/storage/s3"
	"github.com/drivehq/drive-api/internal/pkg/config"
	"github.com/drivehq/drive-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	objects, err := s3store.New(ctx, s3store.Config{
		Endpoint:   cfg.S3.Endpoint,
		Region:     cfg.S3.Region,
		Bucket:     cfg.S3.Bucket,
		AccessKey:  cfg.S3.AccessKey,
		SecretKey:  cfg.S3.SecretKey,
		PresignTTL: cfg.S3.PresignTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage setup failed")
	}

	if cfg.JWTSecret == "" && cfg.ProviderSecret == "" {
		log.Warn().Msg("no signing secret configured, all authenticated operations will fail")
	}

	e := api.NewRouter(cfg, api.Deps{
		DB:      db,
		Redis:   rdb,
		Objects: objects,
		Log:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("drive api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
