// Package main imports random table categories from a CSV file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/observability"
	"github.com/cory-johannsen/campaign/internal/randomizer"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	csvPath := flag.String("file", "content/tables.csv", "CSV file: header row of category names, one item per cell below")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "import-tables")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Fatal("opening csv", zap.Error(err))
	}
	defer f.Close()

	cats, err := randomizer.ParseCSV(f)
	if err != nil {
		logger.Fatal("parsing csv", zap.String("file", *csvPath), zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	svc := randomizer.NewService(
		postgres.NewRandomizerRepository(pool.DB()),
		dice.NewCryptoSource(),
		logger,
		cfg.Randomizer.MaxItems,
		cfg.Randomizer.HistoryLimit,
	)
	report, err := svc.Import(ctx, cats)
	if err != nil {
		logger.Fatal("importing categories", zap.Error(err))
	}
	for _, msg := range report.Errors {
		logger.Warn("category skipped", zap.String("reason", msg))
	}
	logger.Info(report.Message(), zap.Duration("elapsed", time.Since(start)))
}
