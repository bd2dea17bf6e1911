// Package entity defines the domain models for the saved job feature.
package entity

import (
	"time"

	jobentity "jobnaut/internal/feature/job/domain/entity"
	userentity "jobnaut/internal/feature/user/domain/entity"
)

// SavedJob links a user to a job they bookmarked.
type SavedJob struct {
	ID                uint           `json:"id"`
	UserID            uint           `json:"userId"`
	JobID             uint           `json:"jobId"`
	Notes             *string        `json:"notes,omitempty"`
	ApplicationStatus *string        `json:"applicationStatus,omitempty"`
	Job               *jobentity.Job `json:"job,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// NewSavedJob is the input for saving a job.
type NewSavedJob struct {
	UserID            uint
	JobID             uint
	Notes             *string
	ApplicationStatus *string
}

// SavedJobUpdate is a partial update. Nil fields are left untouched.
type SavedJobUpdate struct {
	Notes             *string
	ApplicationStatus *string
}

// IsEmpty reports whether the update changes nothing.
func (u SavedJobUpdate) IsEmpty() bool {
	return u.Notes == nil && u.ApplicationStatus == nil
}

// SavedJobRecord is the persisted row. A user can save a job at most once;
// rows go away with their user or job.
type SavedJobRecord struct {
	ID                uint                   `gorm:"primaryKey"`
	UserID            uint                   `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job"`
	JobID             uint                   `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job;index"`
	Notes             *string                `gorm:"type:text"`
	ApplicationStatus *string                `gorm:"size:64"`
	User              *userentity.UserRecord `gorm:"constraint:OnDelete:CASCADE"`
	Job               *jobentity.JobRecord   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM.
func (SavedJobRecord) TableName() string {
	return "saved_jobs"
}

// ToEntity converts the row, including the job when it was loaded.
func (r *SavedJobRecord) ToEntity() *SavedJob {
	sj := &SavedJob{
		ID:                r.ID,
		UserID:            r.UserID,
		JobID:             r.JobID,
		Notes:             r.Notes,
		ApplicationStatus: r.ApplicationStatus,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Job != nil {
		sj.Job = r.Job.ToEntity()
	}
	return sj
}
