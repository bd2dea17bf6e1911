package usecase

import (
	"context"
	"errors"
	"log/slog"

	"jobnaut/internal/feature/job/domain/entity"
	"jobnaut/internal/shared/ratelimiter"
)

// JobSource fetches postings from an external job board.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type JobSource interface {
	Search(ctx context.Context, query string, page int) ([]entity.NewJob, error)
}

// JobWriter is the subset of JobService used by ingestion.
type JobWriter interface {
	CreateJob(ctx context.Context, in entity.NewJob) (*entity.Job, error)
	KnownSourceIDs(ctx context.Context, source string, ids []string) (map[string]bool, error)
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	Fetched int
	Created int
	Skipped int
	Failed  int
}

// IngestUsecase pulls postings from a JobSource and stores the new ones.
type IngestUsecase struct {
	source      JobSource
	jobs        JobWriter
	rateLimiter ratelimiter.RateLimiterInterface
	pages       int
}

// NewIngestUsecase creates a new IngestUsecase fetching pages pages per query.
func NewIngestUsecase(source JobSource, jobs JobWriter, rateLimiter ratelimiter.RateLimiterInterface, pages int) *IngestUsecase {
	if pages < 1 {
		pages = 1
	}
	return &IngestUsecase{source: source, jobs: jobs, rateLimiter: rateLimiter, pages: pages}
}

// Run ingests every query. A failing query or posting is logged and skipped;
// only cancellation of ctx stops the run early.
func (u *IngestUsecase) Run(ctx context.Context, queries []string) (IngestReport, error) {
	var rep IngestReport
	seen := make(map[string]bool)

	for _, q := range queries {
		for page := 1; page <= u.pages; page++ {
			if err := u.rateLimiter.Wait(ctx); err != nil {
				return rep, err
			}
			postings, err := u.source.Search(ctx, q, page)
			if err != nil {
				if ctx.Err() != nil {
					return rep, ctx.Err()
				}
				slog.Error("failed to fetch postings", "query", q, "page", page, "error", err)
				rep.Failed++
				break
			}
			rep.Fetched += len(postings)
			if err := u.store(ctx, postings, seen, &rep); err != nil {
				return rep, err
			}
			if len(postings) == 0 {
				break
			}
		}
	}

	slog.Info("ingestion finished",
		"queries", len(queries),
		"fetched", rep.Fetched,
		"created", rep.Created,
		"skipped", rep.Skipped,
		"failed", rep.Failed,
	)
	return rep, nil
}

func (u *IngestUsecase) store(ctx context.Context, postings []entity.NewJob, seen map[string]bool, rep *IngestReport) error {
	ids := make([]string, 0, len(postings))
	for _, p := range postings {
		if p.SourceID != "" {
			ids = append(ids, p.SourceID)
		}
	}
	known, err := u.jobs.KnownSourceIDs(ctx, entity.SourceJSearch, ids)
	if err != nil {
		slog.Warn("failed to check known postings", "error", err)
		known = map[string]bool{}
	}

	for _, p := range postings {
		if p.SourceID != "" && (known[p.SourceID] || seen[p.SourceID]) {
			rep.Skipped++
			continue
		}
		p.Skills = ExtractSkills(p.Title + "\n" + p.Description)

		if _, err := u.jobs.CreateJob(ctx, p); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrDuplicateJob) {
				rep.Skipped++
				continue
			}
			slog.Error("failed to store posting", "source_id", p.SourceID, "title", p.Title, "error", err)
			rep.Failed++
			continue
		}
		if p.SourceID != "" {
			seen[p.SourceID] = true
		}
		rep.Created++
	}
	return nil
}
