// Package adapters provides repository implementations for the job feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"jobnaut/internal/feature/job/domain/entity"
	"jobnaut/internal/feature/job/usecase"
	"jobnaut/internal/platform/db"
)

// likeEscape is the escape character for LIKE patterns built from user input.
const likeEscape = `\`

// jobGorm is a GORM implementation of the JobRepository interface.
type jobGorm struct {
	db *gorm.DB
	// asciiFold is set for SQLite, whose LOWER() folds only ASCII letters.
	asciiFold bool
}

// Compile-time check to ensure jobGorm implements JobRepository.
var _ usecase.JobRepository = (*jobGorm)(nil)

// NewJobRepository creates a new GORM-backed job repository.
func NewJobRepository(db *gorm.DB) *jobGorm {
	sqliteDB := db.Config != nil && db.Dialector != nil && db.Dialector.Name() == "sqlite"
	return &jobGorm{db: db, asciiFold: sqliteDB}
}

// Create persists a new job.
func (r *jobGorm) Create(ctx context.Context, rec *entity.JobRecord) error {
	if rec == nil {
		return errors.New("job record is nil")
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrDuplicateJob
		}
		return err
	}
	return nil
}

// FindByID retrieves a job by primary key.
func (r *jobGorm) FindByID(ctx context.Context, id uint) (*entity.JobRecord, error) {
	var rec entity.JobRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns one page of jobs matching f ordered by posted date, newest first.
func (r *jobGorm) List(ctx context.Context, f usecase.JobFilter, offset, limit int) ([]entity.JobRecord, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []entity.JobRecord
	if err := r.filtered(ctx, f).
		Order("posted_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// filtered builds a fresh query for f so that Count and Find do not share state.
func (r *jobGorm) filtered(ctx context.Context, f usecase.JobFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.JobRecord{})

	if f.Query != "" {
		p := containsPattern(f.Query, r.asciiFold)
		q = q.Where(
			"LOWER(title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(company) LIKE ? ESCAPE '"+likeEscape+
				"' OR LOWER(location) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(description) LIKE ? ESCAPE '"+likeEscape+"'",
			p, p, p, p,
		)
	}

	if len(f.Skills) > 0 {
		conds := make([]string, 0, len(f.Skills))
		args := make([]any, 0, len(f.Skills))
		for _, s := range f.Skills {
			conds = append(conds, "LOWER(CAST(skills AS TEXT)) LIKE ? ESCAPE '"+likeEscape+"'")
			args = append(args, containsPattern(s, r.asciiFold))
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	return q
}

// Update writes the supplied columns and returns the fresh row.
func (r *jobGorm) Update(ctx context.Context, id uint, cols usecase.JobColumns) (*entity.JobRecord, error) {
	values := cols.Map()
	if len(values) == 0 {
		return r.FindByID(ctx, id)
	}

	result := r.db.WithContext(ctx).
		Model(&entity.JobRecord{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrJobNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a job and returns the deleted row.
func (r *jobGorm) Delete(ctx context.Context, id uint) (*entity.JobRecord, error) {
	rec, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Delete(&entity.JobRecord{}, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrJobNotFound
	}
	return rec, nil
}

// ExistingSourceIDs returns the subset of ids already stored for source.
func (r *jobGorm) ExistingSourceIDs(ctx context.Context, source string, ids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var existing []string
	if err := r.db.WithContext(ctx).
		Model(&entity.JobRecord{}).
		Where("source = ? AND source_id IN ?", source, ids).
		Pluck("source_id", &existing).Error; err != nil {
		return nil, err
	}
	for _, id := range existing {
		found[id] = true
	}
	return found, nil
}

// containsPattern lower-cases s the way the database lower-cases columns and
// wraps it for a substring LIKE match, escaping LIKE wildcards.
func containsPattern(s string, asciiFold bool) string {
	if asciiFold {
		s = lowerASCII(s)
	} else {
		s = strings.ToLower(s)
	}
	s = strings.ReplaceAll(s, likeEscape, likeEscape+likeEscape)
	s = strings.ReplaceAll(s, "%", likeEscape+"%")
	s = strings.ReplaceAll(s, "_", likeEscape+"_")
	return "%" + s + "%"
}

func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
