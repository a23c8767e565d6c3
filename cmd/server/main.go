package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teamops/opstracker/internal/api"
	"github.com/teamops/opstracker/internal/infrastructure/config"
	mongodb "github.com/teamops/opstracker/internal/infrastructure/db/mongo"
	redisdb "github.com/teamops/opstracker/internal/infrastructure/db/redis"
	"github.com/teamops/opstracker/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "opstracker",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewRecordRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("record index creation failed")
	}

	// --- Redis (optional snapshot cache) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, snapshot cache disabled")
		rdb = nil
	}
	var cache *redisdb.SnapshotCache
	if rdb != nil {
		cache = redisdb.NewSnapshotCache(rdb, cfg.Redis.SnapshotTTL)
		defer rdb.Close()
	}

	e := api.NewRouter(api.Options{
		Mongo:  db,
		Redis:  rdb,
		Cache:  cache,
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
