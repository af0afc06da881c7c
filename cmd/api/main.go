package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sudhanthirapriya/face-recognition-project/internal/api"
	"github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/config"
	mongodb "github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/db/mongo"
	redisdb "github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/db/redis"
	"github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/facecompare"
	"github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/imagestore"
	"github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/imaging"
	"github.com/sudhanthirapriya/face-recognition-project/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.NewIdentityRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create identity indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Face comparator & image handling ---
	comparator, err := facecompare.NewClient(cfg.Face.ServerURL, cfg.Face.Model, cfg.Face.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid face server configuration")
	}

	images, err := imagestore.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}

	e := api.NewRouter(cfg, api.Dependencies{
		Mongo:      db,
		Redis:      rdb,
		Comparator: comparator,
		Images:     images,
		Normalizer: imaging.NewNormalizer(cfg.Uploads.MaxImageDim),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
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
