package usecase

import "errors"

var (
	// ErrSavedJobNotFound is returned when the user has not saved the job.
	ErrSavedJobNotFound = errors.New("saved job not found")
	// ErrJobAlreadySaved is returned when the user already saved the job.
	ErrJobAlreadySaved = errors.New("job already saved")
	// ErrJobNotFound is returned when saving a job that does not exist.
	ErrJobNotFound = errors.New("job not found")
)
