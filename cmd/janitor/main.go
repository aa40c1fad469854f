package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/yeonsu-kang/dutchpay/internal/config"
	"github.com/yeonsu-kang/dutchpay/internal/repository"
	"github.com/yeonsu-kang/dutchpay/pkg/logging"
)

// The janitor prunes stored share payloads past their retention window.
// Stored entries are immutable and never expire in the serving path;
// cleanup is purely operational.
func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level)
	slog.Info("starting payload janitor...",
		"schedule", cfg.Janitor.Schedule,
		"retention", cfg.Janitor.Retention,
	)

	repo, err := initRepository(cfg)
	if err != nil {
		slog.Error("failed to initialize payload store", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds())

	_, err = c.AddFunc(cfg.Janitor.Schedule, func() {
		pruneOldPayloads(repo, cfg.GetJanitorRetention())
	})
	if err != nil {
		slog.Error("failed to schedule prune job", "error", err)
		os.Exit(1)
	}

	// Start the scheduler
	c.Start()
	slog.Info("janitor started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down janitor...")
	<-c.Stop().Done()
	slog.Info("janitor stopped")
}

func initRepository(cfg *config.Config) (repository.PayloadRepository, error) {
	switch cfg.Storage.Driver {
	case "bolt":
		return repository.NewBoltRepository(cfg.Storage.BoltPath)
	default:
		return repository.NewFileRepository(cfg.Storage.Dir)
	}
}

func pruneOldPayloads(repo repository.PayloadRepository, retention time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-retention)
	removed, err := repo.Prune(ctx, cutoff)
	if err != nil {
		slog.Error("prune run failed", "error", err)
		return
	}
	slog.Info("prune run complete", "removed", removed, "cutoff", cutoff)
}
