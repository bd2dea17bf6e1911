package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"jobnaut/internal/app/di"
	"jobnaut/internal/platform/config"
	"jobnaut/internal/platform/db"
	"jobnaut/internal/platform/logging"
	infraredis "jobnaut/internal/platform/redis"
)

// runTimeout bounds one ingestion pass.
const runTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction())

	if cfg.Ingest.APIKey == "" {
		slog.Error("JSEARCH_API_KEY is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	gdb, err := db.Open(cfg.Database, db.DefaultConnectTimeout)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	if cfg.RunMigrations {
		if err := di.Migrate(gdb); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	// With Redis, creating jobs flushes the job cache the servers read from.
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err == nil {
			rdb = tmp
			defer func() { _ = rdb.Close() }()
		}
	}

	svcs, err := di.NewServices(gdb, rdb, cfg)
	if err != nil {
		slog.Error("failed to build services", "error", err)
		os.Exit(1)
	}

	rep, err := di.NewIngestUsecase(cfg.Ingest, svcs.Jobs).Run(ctx, cfg.Ingest.Queries)
	if err != nil {
		slog.Error("ingest aborted", "error", err, "created", rep.Created)
		os.Exit(1)
	}
	slog.Info("ingest ok", "created", rep.Created, "skipped", rep.Skipped, "failed", rep.Failed)
}
