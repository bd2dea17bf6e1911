package di

import (
	"time"

	"jobnaut/internal/feature/job/adapters/jsearch"
	jobusecase "jobnaut/internal/feature/job/usecase"
	"jobnaut/internal/platform/config"
	infrahttp "jobnaut/internal/platform/http"
	"jobnaut/internal/shared/ratelimiter"
)

// NewJobSource creates a fully configured JSearch client with HTTP client.
func NewJobSource(cfg config.IngestConfig) *jsearch.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return jsearch.NewClient(jsearch.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, httpClient)
}

// NewIngestUsecase creates the ingestion pipeline writing through jobs.
func NewIngestUsecase(cfg config.IngestConfig, jobs jobusecase.JobWriter) *jobusecase.IngestUsecase {
	rl := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	return jobusecase.NewIngestUsecase(NewJobSource(cfg), jobs, rl, cfg.Pages)
}
