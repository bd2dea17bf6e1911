package usecase

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"jobnaut/internal/feature/job/domain/entity"
)

// JobRepository persists jobs.
type JobRepository interface {
	// Create inserts rec. Returns ErrDuplicateJob on a source id clash.
	Create(ctx context.Context, rec *entity.JobRecord) error
	// FindByID returns ErrJobNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.JobRecord, error)
	// List returns one page matching f, newest first, and the total match count.
	List(ctx context.Context, f JobFilter, offset, limit int) ([]entity.JobRecord, int64, error)
	// Update applies the non-nil columns and returns the updated row.
	Update(ctx context.Context, id uint, cols JobColumns) (*entity.JobRecord, error)
	// Delete removes the row and returns it as it was before deletion.
	Delete(ctx context.Context, id uint) (*entity.JobRecord, error)
	// ExistingSourceIDs returns which of ids are already stored for source.
	ExistingSourceIDs(ctx context.Context, source string, ids []string) (map[string]bool, error)
}

// JobFilter selects jobs. Query matches title, company, location or
// description case-insensitively. Skills matches jobs listing any of the
// given skills. An empty filter matches everything.
type JobFilter struct {
	Query  string
	Skills []string
}

// JobColumns is a partial update of a job row.
type JobColumns struct {
	Title           *string
	Company         *string
	Location        *string
	Description     *string
	Skills          *datatypes.JSON
	PostedDate      *time.Time
	ApplicationLink *string
}

// Map returns the columns to update keyed by column name.
func (c JobColumns) Map() map[string]any {
	m := make(map[string]any, 7)
	if c.Title != nil {
		m["title"] = *c.Title
	}
	if c.Company != nil {
		m["company"] = *c.Company
	}
	if c.Location != nil {
		m["location"] = *c.Location
	}
	if c.Description != nil {
		m["description"] = *c.Description
	}
	if c.Skills != nil {
		m["skills"] = *c.Skills
	}
	if c.PostedDate != nil {
		m["posted_date"] = *c.PostedDate
	}
	if c.ApplicationLink != nil {
		m["application_link"] = *c.ApplicationLink
	}
	return m
}
