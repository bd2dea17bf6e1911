// Package usecase implements the business logic for the user feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when an update, delete or profile operation targets a missing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when the clerk id or email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidSkills is returned when skills is present but is not an array of strings.
	ErrInvalidSkills = errors.New("skills must be an array")

	// ErrInvalidIdentity is returned when a verified identity lacks an id or email.
	ErrInvalidIdentity = errors.New("identity is missing id or email")
)
