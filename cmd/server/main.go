package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobnaut/internal/app/di"
	"jobnaut/internal/app/router"
	"jobnaut/internal/app/scheduler"
	jobhandler "jobnaut/internal/feature/job/transport/handler"
	savedjobhandler "jobnaut/internal/feature/savedjob/transport/handler"
	userhandler "jobnaut/internal/feature/user/transport/handler"
	"jobnaut/internal/platform/config"
	"jobnaut/internal/platform/db"
	platformhandler "jobnaut/internal/platform/http/handler"
	"jobnaut/internal/platform/logging"
	infraredis "jobnaut/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
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

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Using in-memory cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	svcs, err := di.NewServices(gdb, rdb, cfg)
	if err != nil {
		slog.Error("failed to build services", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET is not set. Protected routes will reject every request.")
	}

	// Handler
	r := router.NewRouter(router.Handlers{
		Health:    platformhandler.NewHealthHandler(healthChecks(gdb, rdb)),
		Jobs:      jobhandler.NewJobHandler(svcs.Jobs),
		Profile:   userhandler.NewProfileHandler(svcs.Profiles),
		SavedJobs: savedjobhandler.NewSavedJobHandler(svcs.SavedJobs),
	}, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
		Sync:           svcs.SyncIdentity,
	})

	var sched *scheduler.Scheduler
	if cfg.Ingest.Schedule != "" {
		if cfg.Ingest.APIKey == "" {
			slog.Warn("INGEST_SCHEDULE is set but JSEARCH_API_KEY is empty; ingestion disabled")
		} else {
			sched = scheduler.New(di.NewIngestUsecase(cfg.Ingest, svcs.Jobs), cfg.Ingest.Schedule, cfg.Ingest.Queries)
			if err := sched.Start(ctx); err != nil {
				slog.Error("failed to start ingest scheduler", "error", err)
				os.Exit(1)
			}
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func healthChecks(gdb *gorm.DB, rdb *redisv9.Client) map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
