package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobnaut/internal/feature/user/domain/entity"
	"jobnaut/internal/platform/cache"
	"jobnaut/internal/platform/encryption"
)

// Cipher seals and opens the sensitive user columns.
type Cipher interface {
	EncryptUserData(in encryption.UserFields) (encryption.SealedUserFields, error)
	DecryptUserData(in encryption.SealedUserFields) (encryption.UserFields, error)
	Seal(plaintext string) (encryption.Field, error)
	SealSkills(skills []string) (encryption.Field, error)
}

// UserService is the cached, encrypting data access layer for users.
// Lookups return (nil, nil) when the user does not exist.
type UserService struct {
	repo   UserRepository
	cache  cache.Store
	cipher Cipher
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, store cache.Store, cipher Cipher) *UserService {
	return &UserService{repo: repo, cache: store, cipher: cipher}
}

func userKey(id uint) string         { return fmt.Sprintf("user_%d", id) }
func clerkKey(clerkID string) string { return "user_clerk_" + clerkID }
func emailKey(email string) string   { return "user_email_" + email }

// CreateUser encrypts the sensitive fields and inserts the user.
func (s *UserService) CreateUser(ctx context.Context, in entity.NewUser) (*entity.User, error) {
	sealed, err := s.cipher.EncryptUserData(encryption.UserFields{
		Name:            in.Name,
		Location:        in.Location,
		ExperienceLevel: in.ExperienceLevel,
		Skills:          in.Skills,
	})
	if err != nil {
		return nil, err
	}

	rec := &entity.UserRecord{
		ClerkID:         in.ClerkID,
		Email:           in.Email,
		Name:            sealed.Name,
		Location:        sealed.Location,
		ExperienceLevel: sealed.ExperienceLevel,
		Skills:          sealed.Skills,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	user, err := s.open(rec)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, user)
	return user, nil
}

// GetUserByID returns the user with the given id.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*entity.User, error) {
	return s.lookup(ctx, userKey(id), func() (*entity.UserRecord, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// GetUserByClerkID returns the user bound to the identity provider id.
func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*entity.User, error) {
	return s.lookup(ctx, clerkKey(clerkID), func() (*entity.UserRecord, error) {
		return s.repo.FindByClerkID(ctx, clerkID)
	})
}

// GetUserByEmail returns the user with the given email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.lookup(ctx, emailKey(email), func() (*entity.UserRecord, error) {
		return s.repo.FindByEmail(ctx, email)
	})
}

// UpdateUser re-encrypts only the supplied fields and invalidates every
// cache key of the user.
func (s *UserService) UpdateUser(ctx context.Context, id uint, upd entity.UserUpdate) (*entity.User, error) {
	var cols SealedColumns
	seal := func(v *string) (*encryption.Field, error) {
		if v == nil {
			return nil, nil
		}
		f, err := s.cipher.Seal(*v)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}

	var err error
	if cols.Name, err = seal(upd.Name); err != nil {
		return nil, err
	}
	if cols.Location, err = seal(upd.Location); err != nil {
		return nil, err
	}
	if cols.ExperienceLevel, err = seal(upd.ExperienceLevel); err != nil {
		return nil, err
	}
	if upd.Skills != nil {
		f, err := s.cipher.SealSkills(*upd.Skills)
		if err != nil {
			return nil, err
		}
		cols.Skills = &f
	}

	rec, err := s.repo.Update(ctx, id, cols)
	if err != nil {
		return nil, err
	}
	user, err := s.open(rec)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, user)
	return user, nil
}

// DeleteUser removes the user and invalidates its cache keys.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*entity.User, error) {
	rec, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.open(rec)
	if err != nil {
		// The row is gone either way; drop what we can.
		s.cache.Delete(ctx, userKey(rec.ID), clerkKey(rec.ClerkID), emailKey(rec.Email))
		return nil, err
	}
	s.invalidate(ctx, user)
	return user, nil
}

// SyncIdentity returns the local user for a verified identity, creating it
// on first sight.
func (s *UserService) SyncIdentity(ctx context.Context, id entity.Identity) (*entity.User, error) {
	if id.ExternalID == "" || id.Email == "" {
		return nil, ErrInvalidIdentity
	}

	user, err := s.GetUserByClerkID(ctx, id.ExternalID)
	if err != nil || user != nil {
		return user, err
	}

	user, err = s.CreateUser(ctx, entity.NewUser{
		ClerkID: id.ExternalID,
		Email:   id.Email,
		Name:    id.Name,
	})
	if errors.Is(err, ErrUserAlreadyExists) {
		// Lost a race with a concurrent first request for the same identity.
		if existing, gerr := s.GetUserByClerkID(ctx, id.ExternalID); gerr == nil && existing != nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, err
	}
	slog.Info("user provisioned", "user_id", user.ID)
	return user, nil
}

func (s *UserService) lookup(ctx context.Context, key string, find func() (*entity.UserRecord, error)) (*entity.User, error) {
	if cached, ok := cache.GetJSON[entity.User](ctx, s.cache, key); ok {
		return &cached, nil
	}

	rec, err := find()
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := s.open(rec)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, key, user)
	return user, nil
}

func (s *UserService) open(rec *entity.UserRecord) (*entity.User, error) {
	fields, err := s.cipher.DecryptUserData(rec.Sealed())
	if err != nil {
		slog.Error("failed to decrypt user", "user_id", rec.ID, "error", err)
		return nil, err
	}
	return &entity.User{
		ID:              rec.ID,
		ClerkID:         rec.ClerkID,
		Email:           rec.Email,
		Name:            fields.Name,
		Location:        fields.Location,
		ExperienceLevel: fields.ExperienceLevel,
		Skills:          fields.Skills,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}, nil
}

func (s *UserService) invalidate(ctx context.Context, u *entity.User) {
	s.cache.Delete(ctx, userKey(u.ID), clerkKey(u.ClerkID), emailKey(u.Email))
}
