// Package scheduler runs job ingestion on a cron schedule inside the server.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	jobusecase "jobnaut/internal/feature/job/usecase"
)

// Ingester runs one ingestion pass.
type Ingester interface {
	Run(ctx context.Context, queries []string) (jobusecase.IngestReport, error)
}

// Scheduler wraps robfig/cron and triggers ingestion on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	ingester Ingester
	queries  []string
	spec     string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler. A run that is still going when the next tick
// fires causes that tick to be skipped.
func New(ingester Ingester, spec string, queries []string) *Scheduler {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo))
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ingester: ingester,
		queries:  queries,
		spec:     spec,
	}
}

// Start registers the job and starts the scheduler. ctx bounds every run.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	slog.Info("ingest scheduler started", "spec", s.spec, "queries", len(s.queries))
	return nil
}

// Stop stops the scheduler and waits for a running ingestion to finish
// or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("ingest scheduler stopped")
	case <-ctx.Done():
		slog.Warn("ingest scheduler stop timed out", "error", ctx.Err())
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	slog.Info("scheduled ingestion started")
	if _, err := s.ingester.Run(ctx, s.queries); err != nil {
		slog.Error("scheduled ingestion failed", "error", err)
	}
}
