// Package main provides the campaign keeper HTTP server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/api"
	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/media"
	"github.com/cory-johannsen/campaign/internal/observability"
	"github.com/cory-johannsen/campaign/internal/randomizer"
	"github.com/cory-johannsen/campaign/internal/server"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "campaignd")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting campaign keeper", zap.String("addr", cfg.Server.Addr()))

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("database connected", zap.Duration("elapsed", time.Since(dbStart)))

	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	sessions := combat.NewRegistry(logger)

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(api.Deps{
		Logger:     logger,
		Health:     pool,
		Characters: postgres.NewCharacterRepository(pool.DB()),
		Resources:  postgres.NewResourceRepository(pool.DB()),
		Videos:     postgres.NewVideoRepository(pool.DB()),
		Randomizer: randomizer.NewService(
			postgres.NewRandomizerRepository(pool.DB()),
			roller,
			logger,
			cfg.Randomizer.MaxItems,
			cfg.Randomizer.HistoryLimit,
		),
		Combat: sessions,
		Mixers: media.NewMixers(cfg.Equalizer.Slots, logger),
		Roller: roller,
	})

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc := server.NewLifecycle(logger)
	lc.Add("http", server.NewHTTPService(httpSrv, cfg.Server.ShutdownTimeout, logger))
	lc.Add("combat-pruner", server.NewTaskService(func(ctx context.Context) {
		sessions.RunPruner(ctx, cfg.Combat.PruneInterval, cfg.Combat.SessionIdleTimeout)
	}))

	logger.Info("campaign keeper initialized", zap.Duration("startup", time.Since(start)))

	if err := lc.Run(ctx); err != nil {
		logger.Error("campaign keeper stopped with error", zap.Error(err))
	}
}
