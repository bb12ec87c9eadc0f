// Command seed clears the catalog and reloads it from the seed document.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/marufk21/1fi/config"
	"github.com/marufk21/1fi/domain/product"
	"github.com/marufk21/1fi/pkg/logx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logx.Init(logx.Options{Production: cfg.Env.IsProduction()})
	logger := logx.Module("seed")

	file := flag.String("file", cfg.SeedFile, "path to the products JSON document")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := product.LoadSeedFile(*file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("Failed to load seed document")
	}

	db, err := product.Open(cfg.DatabaseURL, cfg.DBDebug)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get sql.DB")
	}
	defer sqlDB.Close()

	repo := product.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	n, err := product.NewSeeder(repo, logger).Seed(ctx, doc)
	if err != nil {
		logger.Error().Err(err).Msg("Seeding failed")
		sqlDB.Close()
		os.Exit(1)
	}
	logger.Info().Int("products", n).Str("driver", product.Driver(cfg.DatabaseURL)).Msg("Catalog seeded")
}
