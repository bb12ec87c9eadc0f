package main

import (
	"context"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/marufk21/1fi/config"
	"github.com/marufk21/1fi/modules/api"
	"github.com/marufk21/1fi/modules/catalog"
	"github.com/marufk21/1fi/pkg/logx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logx.Init(logx.Options{Production: cfg.Env.IsProduction()})

	logx.Info().Str("env", string(cfg.Env)).Msg("=== Phone Catalog ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create application")
	}

	// Order: independent modules first, then dependent modules
	catalogModule := catalog.NewModule(cfg.DatabaseURL, cfg.DBDebug)
	app.Register(catalogModule)                     // Owns the product store
	app.Register(api.NewModule(cfg, catalogModule)) // Depends on catalog

	if err := app.Start(context.Background()); err != nil {
		logx.Fatal().Err(err).Msg("Failed to start application")
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logx.Info().Msg("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	logx.Info().Int("exit_code", exitCode).Msg("Application exited")
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	logx.Info().Msg("Application started successfully!")
	logx.Info().Msgf("REST API Endpoints (http://localhost:%d, also under /api):", cfg.HTTPPort)
	logx.Info().Msg("  GET    /products                 - List products")
	logx.Info().Msg("  GET    /products/:id             - Get product details")
	logx.Info().Msg("  GET    /products/:id/quote       - Price and EMI for ?color=&storage=&emi=")
	logx.Info().Msg("  GET    /health                   - Health check")
	logx.Info().Msg("Seed the catalog with: go run ./cmd/seed")
	logx.Info().Msg("Press Ctrl+C to shutdown gracefully")
}
