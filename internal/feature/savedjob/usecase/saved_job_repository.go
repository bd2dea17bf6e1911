package usecase

import (
	"context"

	"jobnaut/internal/feature/savedjob/domain/entity"
)

// SavedJobRepository defines the persistence operations for saved jobs.
// Rows are addressed by (userID, jobID).
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SavedJobRepository interface {
	// Create inserts rec. Returns ErrJobAlreadySaved on a duplicate pair
	// and ErrJobNotFound when the job does not exist.
	Create(ctx context.Context, rec *entity.SavedJobRecord) error
	// ListByUser returns the user's saved jobs with their jobs loaded, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.SavedJobRecord, error)
	// Find returns the saved job with its job loaded, or ErrSavedJobNotFound.
	Find(ctx context.Context, userID, jobID uint) (*entity.SavedJobRecord, error)
	// Update writes the supplied fields and returns the fresh row.
	Update(ctx context.Context, userID, jobID uint, upd entity.SavedJobUpdate) (*entity.SavedJobRecord, error)
	// Delete removes the row and returns it.
	Delete(ctx context.Context, userID, jobID uint) (*entity.SavedJobRecord, error)
}
