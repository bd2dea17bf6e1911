// Package entity defines the domain models for the user feature.
package entity

import (
	"time"

	"jobnaut/internal/platform/encryption"
)

// User is a decrypted user as seen by every layer above persistence.
type User struct {
	ID              uint      `json:"id"`
	ClerkID         string    `json:"clerkId"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experienceLevel"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Profile is the profile-shaped view of a User. Skills is never nil.
type Profile User

// NewUser is the input for creating a user.
type NewUser struct {
	ClerkID         string
	Email           string
	Name            string
	Location        string
	ExperienceLevel string
	Skills          []string
}

// UserUpdate is a partial update. Nil fields are left untouched.
type UserUpdate struct {
	Name            *string
	Location        *string
	ExperienceLevel *string
	Skills          *[]string
}

// IsEmpty reports whether u changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Location == nil && u.ExperienceLevel == nil && u.Skills == nil
}

// ProfileUpdate is the validated input of a profile update.
type ProfileUpdate = UserUpdate

// Identity is a user verified by the identity provider.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
}

// UserRecord is the persisted row. Sensitive columns hold encryption.Field
// values and are only opened by the user service.
type UserRecord struct {
	ID              uint   `gorm:"primaryKey"`
	ClerkID         string `gorm:"uniqueIndex;size:255;not null"`
	Email           string `gorm:"uniqueIndex;size:255;not null"`
	Name            encryption.Field
	Location        encryption.Field
	ExperienceLevel encryption.Field
	Skills          encryption.Field
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM.
func (UserRecord) TableName() string {
	return "users"
}

// Sealed returns the encrypted columns of r.
func (r *UserRecord) Sealed() encryption.SealedUserFields {
	return encryption.SealedUserFields{
		Name:            r.Name,
		Location:        r.Location,
		ExperienceLevel: r.ExperienceLevel,
		Skills:          r.Skills,
	}
}
