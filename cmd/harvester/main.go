// cmd/harvester/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"repo-history-harvester/internal/config"
	"repo-history-harvester/internal/github"
	"repo-history-harvester/internal/logging"
	"repo-history-harvester/internal/store"
	"repo-history-harvester/internal/syncer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Harvest failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration and initialize structured logger
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)
	logger.Info("Configuration loaded successfully", "repositories", len(cfg.RepoNames))

	// 2. Interrupts abort the run
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 3. Open the database connection, closed once every repository is done
	dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()
	logger.Info("Database connection established")

	// 4. Initialize application components
	ghClient, err := github.NewClient(cfg.GithubToken, logger,
		github.WithBaseURL(cfg.GithubAPIURL),
		github.WithPerPage(cfg.PerPage),
	)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	st := store.New(dbpool, cfg.DatabaseURL, logger)

	// 5. Run the batch
	return syncer.NewSyncer(st, ghClient, logger, cfg.RepoNames).Run(ctx)
}
