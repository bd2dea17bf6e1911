// Package dto defines data transfer objects for the saved job feature's HTTP transport layer.
package dto

import "jobnaut/internal/feature/savedjob/domain/entity"

// SaveJobReq is the request body for POST /saved-jobs.
type SaveJobReq struct {
	JobID             uint    `json:"jobId" binding:"required"`
	Notes             *string `json:"notes"`
	ApplicationStatus *string `json:"applicationStatus" binding:"omitempty,max=64"`
}

// UpdateSavedJobReq is the request body for PUT /saved-jobs/:jobId.
type UpdateSavedJobReq struct {
	Notes             *string `json:"notes"`
	ApplicationStatus *string `json:"applicationStatus" binding:"omitempty,max=64"`
}

// SavedJobRes wraps a single saved job.
type SavedJobRes struct {
	SavedJob *entity.SavedJob `json:"savedJob"`
}

// SavedJobsRes wraps the user's saved jobs.
type SavedJobsRes struct {
	SavedJobs []entity.SavedJob `json:"savedJobs"`
}
