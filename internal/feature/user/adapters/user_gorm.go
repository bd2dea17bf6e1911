// Package adapters provides repository implementations for the user feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobnaut/internal/feature/user/domain/entity"
	"jobnaut/internal/feature/user/usecase"
	"jobnaut/internal/platform/db"
)

// userGorm is a GORM implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a new GORM-backed user repository.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create persists a new user.
func (r *userGorm) Create(ctx context.Context, rec *entity.UserRecord) error {
	if rec == nil {
		return errors.New("user record is nil")
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by primary key.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.UserRecord, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByClerkID retrieves a user by identity provider id.
func (r *userGorm) FindByClerkID(ctx context.Context, clerkID string) (*entity.UserRecord, error) {
	return r.first(ctx, "clerk_id = ?", clerkID)
}

// FindByEmail retrieves a user by email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.UserRecord, error) {
	return r.first(ctx, "email = ?", email)
}

// Update writes the supplied encrypted columns and returns the fresh row.
func (r *userGorm) Update(ctx context.Context, id uint, cols usecase.SealedColumns) (*entity.UserRecord, error) {
	values := cols.Map()
	if len(values) == 0 {
		return r.FindByID(ctx, id)
	}

	result := r.db.WithContext(ctx).
		Model(&entity.UserRecord{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a user and returns the deleted row.
func (r *userGorm) Delete(ctx context.Context, id uint) (*entity.UserRecord, error) {
	rec, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entity.UserRecord{}, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return rec, nil
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.UserRecord, error) {
	var rec entity.UserRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &rec, nil
}
