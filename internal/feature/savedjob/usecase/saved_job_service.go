package usecase

import (
	"context"
	"errors"
	"fmt"

	"jobnaut/internal/feature/savedjob/domain/entity"
	"jobnaut/internal/platform/cache"
)

// SavedJobService is the cached data access layer for saved jobs.
type SavedJobService struct {
	repo  SavedJobRepository
	cache cache.Store
}

// NewSavedJobService creates a new SavedJobService.
func NewSavedJobService(repo SavedJobRepository, store cache.Store) *SavedJobService {
	return &SavedJobService{repo: repo, cache: store}
}

func listKey(userID uint) string { return fmt.Sprintf("saved_jobs_%d", userID) }

func itemKey(userID, jobID uint) string { return fmt.Sprintf("saved_job_%d_%d", userID, jobID) }

// SaveJob records that the user saved the job.
func (s *SavedJobService) SaveJob(ctx context.Context, in entity.NewSavedJob) (*entity.SavedJob, error) {
	rec := &entity.SavedJobRecord{
		UserID:            in.UserID,
		JobID:             in.JobID,
		Notes:             in.Notes,
		ApplicationStatus: in.ApplicationStatus,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.invalidate(ctx, in.UserID, in.JobID)
	return rec.ToEntity(), nil
}

// GetSavedJobsByUser returns every job the user saved, with job details.
func (s *SavedJobService) GetSavedJobsByUser(ctx context.Context, userID uint) ([]entity.SavedJob, error) {
	key := listKey(userID)
	if cached, ok := cache.GetJSON[[]entity.SavedJob](ctx, s.cache, key); ok {
		return cached, nil
	}

	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	out := make([]entity.SavedJob, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].ToEntity())
	}
	cache.SetJSON(ctx, s.cache, key, out)
	return out, nil
}

// GetSavedJob returns the saved job with job details, or nil when the user
// has not saved it.
func (s *SavedJobService) GetSavedJob(ctx context.Context, userID, jobID uint) (*entity.SavedJob, error) {
	key := itemKey(userID, jobID)
	if cached, ok := cache.GetJSON[entity.SavedJob](ctx, s.cache, key); ok {
		return &cached, nil
	}

	rec, err := s.repo.Find(ctx, userID, jobID)
	if errors.Is(err, ErrSavedJobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sj := rec.ToEntity()
	cache.SetJSON(ctx, s.cache, key, sj)
	return sj, nil
}

// UpdateSavedJob changes the notes and/or application status.
func (s *SavedJobService) UpdateSavedJob(ctx context.Context, userID, jobID uint, upd entity.SavedJobUpdate) (*entity.SavedJob, error) {
	rec, err := s.repo.Update(ctx, userID, jobID, upd)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, jobID)
	return rec.ToEntity(), nil
}

// DeleteSavedJob removes the saved job and returns it.
func (s *SavedJobService) DeleteSavedJob(ctx context.Context, userID, jobID uint) (*entity.SavedJob, error) {
	rec, err := s.repo.Delete(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, jobID)
	return rec.ToEntity(), nil
}

func (s *SavedJobService) invalidate(ctx context.Context, userID, jobID uint) {
	s.cache.Delete(ctx, itemKey(userID, jobID), listKey(userID))
}
