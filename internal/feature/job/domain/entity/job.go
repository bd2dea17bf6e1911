// Package entity defines the domain models for the job feature.
package entity

import (
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/datatypes"
)

// SourceJSearch marks jobs ingested from the JSearch API.
const SourceJSearch = "jsearch"

// Job is a job posting with its skills decoded.
type Job struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Skills          []string  `json:"skills"`
	PostedDate      time.Time `json:"postedDate"`
	ApplicationLink string    `json:"applicationLink,omitempty"`
	Source          string    `json:"source,omitempty"`
	SourceID        string    `json:"sourceId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewJob is the input for creating a job.
type NewJob struct {
	Title           string
	Company         string
	Location        string
	Description     string
	Skills          []string
	PostedDate      time.Time
	ApplicationLink string
	Source          string
	SourceID        string
}

// JobUpdate is a partial update. Nil fields are left untouched.
type JobUpdate struct {
	Title           *string
	Company         *string
	Location        *string
	Description     *string
	Skills          *[]string
	PostedDate      *time.Time
	ApplicationLink *string
}

// PagedJobs is one page of jobs with pagination info.
type PagedJobs struct {
	Jobs       []Job `json:"jobs"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// JobRecord is the persisted row. Skills is stored as a JSON array.
type JobRecord struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"size:255;not null"`
	Company         string         `gorm:"size:255;not null"`
	Location        string         `gorm:"size:255"`
	Description     string         `gorm:"type:text"`
	Skills          datatypes.JSON
	PostedDate      time.Time      `gorm:"index;not null"`
	ApplicationLink *string        `gorm:"size:2048"`
	Source          *string        `gorm:"size:32;uniqueIndex:idx_jobs_source"`
	SourceID        *string        `gorm:"size:255;uniqueIndex:idx_jobs_source"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM.
func (JobRecord) TableName() string {
	return "jobs"
}

// ToEntity converts the row to a Job, decoding skills.
func (r *JobRecord) ToEntity() *Job {
	return &Job{
		ID:              r.ID,
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		Description:     r.Description,
		Skills:          DecodeSkills(r.Skills),
		PostedDate:      r.PostedDate,
		ApplicationLink: deref(r.ApplicationLink),
		Source:          deref(r.Source),
		SourceID:        deref(r.SourceID),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// DecodeSkills parses stored skills. Empty or malformed input yields an
// empty list.
func DecodeSkills(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		slog.Warn("failed to parse job skills", "error", err)
		return []string{}
	}
	if skills == nil {
		return []string{}
	}
	return skills
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
