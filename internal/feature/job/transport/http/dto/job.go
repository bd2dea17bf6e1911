// Package dto defines data transfer objects for the job feature's HTTP transport layer.
package dto

import (
	"time"

	"jobnaut/internal/feature/job/domain/entity"
)

// CreateJobReq is the request body for POST /jobs.
type CreateJobReq struct {
	Title           string     `json:"title" binding:"required"`
	Company         string     `json:"company" binding:"required"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	Skills          []string   `json:"skills"`
	PostedDate      *time.Time `json:"postedDate"`
	ApplicationLink string     `json:"applicationLink" binding:"omitempty,url"`
}

// ToNewJob converts the request, defaulting postedDate to now.
func (r CreateJobReq) ToNewJob(now time.Time) entity.NewJob {
	posted := now
	if r.PostedDate != nil {
		posted = *r.PostedDate
	}
	return entity.NewJob{
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		Description:     r.Description,
		Skills:          r.Skills,
		PostedDate:      posted,
		ApplicationLink: r.ApplicationLink,
	}
}

// UpdateJobReq is the request body for PUT /jobs/:id. Omitted fields are kept.
type UpdateJobReq struct {
	Title           *string    `json:"title" binding:"omitempty,min=1"`
	Company         *string    `json:"company" binding:"omitempty,min=1"`
	Location        *string    `json:"location"`
	Description     *string    `json:"description"`
	Skills          *[]string  `json:"skills"`
	PostedDate      *time.Time `json:"postedDate"`
	ApplicationLink *string    `json:"applicationLink"`
}

// ToUpdate converts the request to a domain update.
func (r UpdateJobReq) ToUpdate() entity.JobUpdate {
	return entity.JobUpdate{
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		Description:     r.Description,
		Skills:          r.Skills,
		PostedDate:      r.PostedDate,
		ApplicationLink: r.ApplicationLink,
	}
}

// JobRes wraps a single job.
type JobRes struct {
	Job *entity.Job `json:"job"`
}
