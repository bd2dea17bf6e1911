package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"jobnaut/internal/feature/job/domain/entity"
	"jobnaut/internal/platform/cache"
)

const (
	// DefaultPage is used when page is not positive.
	DefaultPage = 1
	// DefaultLimit is used when limit is not positive.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
	// MaxPage caps the page number so the row offset cannot overflow.
	MaxPage = 1_000_000
)

// JobService is the cached data access layer for jobs. Every write flushes
// the whole job cache, since search result keys cannot be enumerated.
type JobService struct {
	repo  JobRepository
	cache cache.Store
}

// NewJobService creates a new JobService.
func NewJobService(repo JobRepository, store cache.Store) *JobService {
	return &JobService{repo: repo, cache: store}
}

func jobKey(id uint) string { return fmt.Sprintf("job_%d", id) }

func searchKey(query string, page, limit int) string {
	return fmt.Sprintf("search_%s_%d_%d", query, page, limit)
}

// CreateJob inserts a job.
func (s *JobService) CreateJob(ctx context.Context, in entity.NewJob) (*entity.Job, error) {
	skills, err := encodeSkills(in.Skills)
	if err != nil {
		return nil, err
	}
	rec := &entity.JobRecord{
		Title:           in.Title,
		Company:         in.Company,
		Location:        in.Location,
		Description:     in.Description,
		Skills:          skills,
		PostedDate:      in.PostedDate,
		ApplicationLink: optional(in.ApplicationLink),
		Source:          optional(in.Source),
		SourceID:        optional(in.SourceID),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.cache.Flush(ctx)
	return rec.ToEntity(), nil
}

// GetJobByID returns the job, or nil when it does not exist.
func (s *JobService) GetJobByID(ctx context.Context, id uint) (*entity.Job, error) {
	key := jobKey(id)
	if cached, ok := cache.GetJSON[entity.Job](ctx, s.cache, key); ok {
		return &cached, nil
	}

	rec, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrJobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	job := rec.ToEntity()
	cache.SetJSON(ctx, s.cache, key, job)
	return job, nil
}

// GetAllJobs returns one page of all jobs, newest first. Not cached.
func (s *JobService) GetAllJobs(ctx context.Context, page, limit int) (*entity.PagedJobs, error) {
	page, limit = NormalizePage(page, limit)
	return s.list(ctx, JobFilter{}, page, limit)
}

// SearchJobs returns one page of jobs whose title, company, location or
// description contains query, ignoring case.
func (s *JobService) SearchJobs(ctx context.Context, query string, page, limit int) (*entity.PagedJobs, error) {
	page, limit = NormalizePage(page, limit)
	key := searchKey(query, page, limit)
	if cached, ok := cache.GetJSON[entity.PagedJobs](ctx, s.cache, key); ok {
		return &cached, nil
	}

	result, err := s.list(ctx, JobFilter{Query: query}, page, limit)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, key, result)
	return result, nil
}

// GetJobsBySkills returns one page of jobs listing any of skills. Not cached.
func (s *JobService) GetJobsBySkills(ctx context.Context, skills []string, page, limit int) (*entity.PagedJobs, error) {
	page, limit = NormalizePage(page, limit)
	if len(skills) == 0 {
		return &entity.PagedJobs{Jobs: []entity.Job{}, Page: page, Limit: limit}, nil
	}
	return s.list(ctx, JobFilter{Skills: skills}, page, limit)
}

// UpdateJob applies the supplied fields.
func (s *JobService) UpdateJob(ctx context.Context, id uint, upd entity.JobUpdate) (*entity.Job, error) {
	cols := JobColumns{
		Title:           upd.Title,
		Company:         upd.Company,
		Location:        upd.Location,
		Description:     upd.Description,
		PostedDate:      upd.PostedDate,
		ApplicationLink: upd.ApplicationLink,
	}
	if upd.Skills != nil {
		skills, err := encodeSkills(*upd.Skills)
		if err != nil {
			return nil, err
		}
		cols.Skills = &skills
	}

	rec, err := s.repo.Update(ctx, id, cols)
	if err != nil {
		return nil, err
	}
	s.cache.Flush(ctx)
	return rec.ToEntity(), nil
}

// DeleteJob removes the job and returns it.
func (s *JobService) DeleteJob(ctx context.Context, id uint) (*entity.Job, error) {
	rec, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Flush(ctx)
	return rec.ToEntity(), nil
}

// KnownSourceIDs reports which source ids are already stored.
func (s *JobService) KnownSourceIDs(ctx context.Context, source string, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}
	return s.repo.ExistingSourceIDs(ctx, source, ids)
}

func (s *JobService) list(ctx context.Context, f JobFilter, page, limit int) (*entity.PagedJobs, error) {
	recs, total, err := s.repo.List(ctx, f, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs := make([]entity.Job, 0, len(recs))
	for i := range recs {
		jobs = append(jobs, *recs[i].ToEntity())
	}
	return &entity.PagedJobs{
		Jobs:       jobs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

// NormalizePage applies the default page and limit and caps them at
// MaxPage and MaxLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func encodeSkills(skills []string) (datatypes.JSON, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	return datatypes.JSON(b), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
