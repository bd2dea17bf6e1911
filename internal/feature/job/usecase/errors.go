// Package usecase implements the business logic for the job feature.
package usecase

import "errors"

var (
	// ErrJobNotFound is returned when an update or delete targets a missing job.
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when a job with the same source id already exists.
	ErrDuplicateJob = errors.New("job already exists")
)
