package usecase

import (
	"context"

	"jobnaut/internal/feature/user/domain/entity"
	"jobnaut/internal/platform/encryption"
)

// UserRepository persists users with their sensitive columns already sealed.
type UserRepository interface {
	// Create inserts rec and fills its ID and timestamps.
	// Returns ErrUserAlreadyExists when the clerk id or email is taken.
	Create(ctx context.Context, rec *entity.UserRecord) error
	// FindByID returns ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.UserRecord, error)
	// FindByClerkID returns ErrUserNotFound when no row matches.
	FindByClerkID(ctx context.Context, clerkID string) (*entity.UserRecord, error)
	// FindByEmail returns ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.UserRecord, error)
	// Update applies the non-nil columns and returns the updated row.
	Update(ctx context.Context, id uint, cols SealedColumns) (*entity.UserRecord, error)
	// Delete removes the row and returns it as it was before deletion.
	Delete(ctx context.Context, id uint) (*entity.UserRecord, error)
}

// SealedColumns is a partial update of the encrypted user columns.
type SealedColumns struct {
	Name            *encryption.Field
	Location        *encryption.Field
	ExperienceLevel *encryption.Field
	Skills          *encryption.Field
}

// Map returns the columns to update keyed by column name.
func (c SealedColumns) Map() map[string]any {
	m := make(map[string]any, 4)
	if c.Name != nil {
		m["name"] = *c.Name
	}
	if c.Location != nil {
		m["location"] = *c.Location
	}
	if c.ExperienceLevel != nil {
		m["experience_level"] = *c.ExperienceLevel
	}
	if c.Skills != nil {
		m["skills"] = *c.Skills
	}
	return m
}
