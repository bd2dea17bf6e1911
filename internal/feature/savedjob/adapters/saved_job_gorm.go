// Package adapters provides repository implementations for the saved job feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobnaut/internal/feature/savedjob/domain/entity"
	"jobnaut/internal/feature/savedjob/usecase"
	"jobnaut/internal/platform/db"
)

// savedJobGorm is a GORM implementation of the SavedJobRepository interface.
type savedJobGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure savedJobGorm implements SavedJobRepository.
var _ usecase.SavedJobRepository = (*savedJobGorm)(nil)

// NewSavedJobRepository creates a new GORM-backed saved job repository.
func NewSavedJobRepository(db *gorm.DB) *savedJobGorm {
	return &savedJobGorm{db: db}
}

// Create persists a new saved job.
func (r *savedJobGorm) Create(ctx context.Context, rec *entity.SavedJobRecord) error {
	if rec == nil {
		return errors.New("saved job record is nil")
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return usecase.ErrJobAlreadySaved
	case db.IsForeignKeyViolation(err):
		return usecase.ErrJobNotFound
	default:
		return err
	}
}

// ListByUser returns the user's saved jobs, newest first, with jobs preloaded.
func (r *savedJobGorm) ListByUser(ctx context.Context, userID uint) ([]entity.SavedJobRecord, error) {
	var recs []entity.SavedJobRecord
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Find retrieves one saved job with its job preloaded.
func (r *savedJobGorm) Find(ctx context.Context, userID, jobID uint) (*entity.SavedJobRecord, error) {
	var rec entity.SavedJobRecord
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSavedJobNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Update writes the supplied fields and returns the fresh row.
func (r *savedJobGorm) Update(ctx context.Context, userID, jobID uint, upd entity.SavedJobUpdate) (*entity.SavedJobRecord, error) {
	values := map[string]any{}
	if upd.Notes != nil {
		values["notes"] = *upd.Notes
	}
	if upd.ApplicationStatus != nil {
		values["application_status"] = *upd.ApplicationStatus
	}
	if len(values) == 0 {
		return r.Find(ctx, userID, jobID)
	}

	result := r.db.WithContext(ctx).
		Model(&entity.SavedJobRecord{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrSavedJobNotFound
	}
	return r.Find(ctx, userID, jobID)
}

// Delete removes a saved job and returns the deleted row.
func (r *savedJobGorm) Delete(ctx context.Context, userID, jobID uint) (*entity.SavedJobRecord, error) {
	rec, err := r.Find(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entity.SavedJobRecord{}, rec.ID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrSavedJobNotFound
	}
	return rec, nil
}
