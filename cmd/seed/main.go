// Package main loads characters from a YAML seed file into the database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/observability"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seedPath := flag.String("file", "content/characters.yaml", "path to character seed YAML")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "seed")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	chars, err := character.LoadFile(*seedPath)
	if err != nil {
		logger.Fatal("loading seed file", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	repo := postgres.NewCharacterRepository(pool.DB())
	for _, c := range chars {
		created, err := repo.Create(ctx, c)
		if err != nil {
			logger.Fatal("creating character", zap.String("name", c.Name), zap.Error(err))
		}
		logger.Info("character seeded",
			zap.String("id", created.ID),
			zap.String("name", created.Name),
			zap.String("category", string(created.Category)),
		)
	}

	logger.Info("seed complete",
		zap.Int("count", len(chars)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
