package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"jobnaut/internal/feature/user/domain/entity"
)

// UserStore is the subset of UserService the profile service depends on.
type UserStore interface {
	GetUserByID(ctx context.Context, id uint) (*entity.User, error)
	UpdateUser(ctx context.Context, id uint, upd entity.UserUpdate) (*entity.User, error)
}

// ProfileService exposes the profile-shaped operations over UserService.
type ProfileService struct {
	users UserStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{users: users}
}

// GetProfile returns the decrypted profile of userID.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*entity.Profile, error) {
	user, err := s.require(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user, user.Skills), nil
}

// UpdateProfile applies only the fields present in upd.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, upd entity.ProfileUpdate) (*entity.Profile, error) {
	user, err := s.require(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return toProfile(user, user.Skills), nil
	}
	user, err = s.users.UpdateUser(ctx, userID, upd)
	if err != nil {
		return nil, err
	}
	return toProfile(user, user.Skills), nil
}

// AddSkills unions the user's skills with skills. Existing skills keep
// their order and new unique skills follow in the order given.
func (s *ProfileService) AddSkills(ctx context.Context, userID uint, skills []string) (*entity.Profile, error) {
	user, err := s.require(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := MergeSkills(user.Skills, skills)
	return s.replaceSkills(ctx, userID, merged)
}

// RemoveSkills drops every skill that exactly matches one in skills.
func (s *ProfileService) RemoveSkills(ctx context.Context, userID uint, skills []string) (*entity.Profile, error) {
	user, err := s.require(ctx, userID)
	if err != nil {
		return nil, err
	}
	remaining := RemoveSkills(user.Skills, skills)
	return s.replaceSkills(ctx, userID, remaining)
}

func (s *ProfileService) replaceSkills(ctx context.Context, userID uint, skills []string) (*entity.Profile, error) {
	user, err := s.users.UpdateUser(ctx, userID, entity.UserUpdate{Skills: &skills})
	if err != nil {
		return nil, err
	}
	return toProfile(user, skills), nil
}

func (s *ProfileService) require(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func toProfile(u *entity.User, skills []string) *entity.Profile {
	p := entity.Profile(*u)
	if skills == nil {
		skills = []string{}
	}
	p.Skills = skills
	return &p
}

// MergeSkills returns existing followed by the values of added not already
// present, with duplicates removed.
func MergeSkills(existing, added []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// RemoveSkills returns existing without any value listed in removed.
func RemoveSkills(existing, removed []string) []string {
	drop := make(map[string]struct{}, len(removed))
	for _, s := range removed {
		drop[s] = struct{}{}
	}
	out := make([]string, 0, len(existing))
	for _, s := range existing {
		if _, ok := drop[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// DecodeProfileUpdate parses a partial profile from JSON. Omitted fields
// stay nil. A skills value that is present but not an array of strings
// yields ErrInvalidSkills.
func DecodeProfileUpdate(data []byte) (entity.ProfileUpdate, error) {
	var raw struct {
		Name            *string         `json:"name"`
		Location        *string         `json:"location"`
		ExperienceLevel *string         `json:"experienceLevel"`
		Skills          json.RawMessage `json:"skills"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return entity.ProfileUpdate{}, fmt.Errorf("decode profile: %w", err)
	}

	upd := entity.ProfileUpdate{
		Name:            raw.Name,
		Location:        raw.Location,
		ExperienceLevel: raw.ExperienceLevel,
	}
	if raw.Skills != nil {
		trimmed := bytes.TrimSpace(raw.Skills)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return entity.ProfileUpdate{}, ErrInvalidSkills
		}
		var skills []string
		if err := json.Unmarshal(trimmed, &skills); err != nil {
			return entity.ProfileUpdate{}, ErrInvalidSkills
		}
		if skills == nil {
			skills = []string{}
		}
		upd.Skills = &skills
	}
	return upd, nil
}
