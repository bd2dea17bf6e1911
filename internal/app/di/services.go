package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	jobadapters "jobnaut/internal/feature/job/adapters"
	jobusecase "jobnaut/internal/feature/job/usecase"
	savedjobadapters "jobnaut/internal/feature/savedjob/adapters"
	savedjobusecase "jobnaut/internal/feature/savedjob/usecase"
	useradapters "jobnaut/internal/feature/user/adapters"
	userentity "jobnaut/internal/feature/user/domain/entity"
	userusecase "jobnaut/internal/feature/user/usecase"
	"jobnaut/internal/platform/cache"
	"jobnaut/internal/platform/config"
	"jobnaut/internal/platform/encryption"
	jwtmw "jobnaut/internal/platform/jwt"
)

// Services holds the entity services shared by the server and the ingester.
type Services struct {
	Users     *userusecase.UserService
	Profiles  *userusecase.ProfileService
	Jobs      *jobusecase.JobService
	SavedJobs *savedjobusecase.SavedJobService
}

// NewServices wires repositories, caches and the PII cipher. rdb may be nil.
func NewServices(db *gorm.DB, rdb *redis.Client, cfg *config.Config) (*Services, error) {
	cipher, err := encryption.NewService(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption: %w", err)
	}

	ttl := cfg.Cache.TTL
	// Cached users are decrypted, so they stay in process memory even when
	// Redis is configured.
	users := userusecase.NewUserService(
		useradapters.NewUserRepository(db),
		cache.NewMemoryStore(ttl),
		cipher,
	)
	return &Services{
		Users:    users,
		Profiles: userusecase.NewProfileService(users),
		Jobs: jobusecase.NewJobService(
			jobadapters.NewJobRepository(db),
			NewCacheStore(rdb, ttl, NamespaceJob),
		),
		SavedJobs: savedjobusecase.NewSavedJobService(
			savedjobadapters.NewSavedJobRepository(db),
			NewCacheStore(rdb, ttl, NamespaceSavedJob),
		),
	}, nil
}

// SyncIdentity adapts UserService.SyncIdentity to the auth middleware.
func (s *Services) SyncIdentity(ctx context.Context, id jwtmw.Identity) (uint, error) {
	user, err := s.Users.SyncIdentity(ctx, userentity.Identity{
		ExternalID: id.ExternalID,
		Email:      id.Email,
		Name:       id.Name,
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
