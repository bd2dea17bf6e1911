package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobnaut/internal/feature/job/adapters/jsearch/dto"
	"jobnaut/internal/feature/job/domain/entity"
	"jobnaut/internal/feature/job/usecase"
)

const rapidAPIHost = "jsearch.p.rapidapi.com"

// Client fetches job postings from JSearch.
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// Compile-time check to ensure Client implements JobSource.
var _ usecase.JobSource = (*Client)(nil)

// NewClient creates a new JSearch client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// Search fetches one page of postings for query and maps them to new jobs.
// Skills are left empty for the caller to fill.
func (c *Client) Search(ctx context.Context, query string, page int) ([]entity.NewJob, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("num_pages", "1")
	q.Set("date_posted", "all")

	u := fmt.Sprintf("%s/search?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("jsearch http %d", res.StatusCode)
	}

	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("jsearch decode: %w", err)
	}
	if strings.EqualFold(body.Status, "error") {
		return nil, fmt.Errorf("jsearch: %s", body.Message)
	}

	jobs := make([]entity.NewJob, 0, len(body.Data))
	for _, p := range body.Data {
		jobs = append(jobs, c.toNewJob(p))
	}
	return jobs, nil
}

func (c *Client) toNewJob(p dto.Posting) entity.NewJob {
	location := p.JobCountry
	if p.JobCity != "" {
		location = p.JobCity + ", " + p.JobState
	}

	posted := c.now().UTC()
	if p.JobPostedAtDatetimeUTC != "" {
		if t, err := time.Parse(time.RFC3339, p.JobPostedAtDatetimeUTC); err == nil {
			posted = t
		} else {
			slog.Debug("unparseable posting time", "job_id", p.JobID, "value", p.JobPostedAtDatetimeUTC)
		}
	}

	return entity.NewJob{
		Title:           p.JobTitle,
		Company:         p.EmployerName,
		Location:        location,
		Description:     p.JobDescription,
		PostedDate:      posted,
		ApplicationLink: p.JobApplyLink,
		Source:          entity.SourceJSearch,
		SourceID:        p.JobID,
	}
}
