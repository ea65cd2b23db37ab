package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/authsvc/domain"
)

// CachedUserRepository decorates a domain.UserRepository with a Redis
// read-through cache on FindByID, the lookup the auth middleware performs
// on every bearer request. Every write goes to the inner store first and
// then drops the cached record, so 2FA state transitions are never served
// stale.
type CachedUserRepository struct {
	inner  domain.UserRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCachedUserRepository creates a new cached user repository
func NewCachedUserRepository(inner domain.UserRepository, client *redis.Client, ttl time.Duration) domain.UserRepository {
	return &CachedUserRepository{
		inner:  inner,
		client: client,
		prefix: "user:",
		ttl:    ttl,
	}
}

func (r *CachedUserRepository) key(userID string) string {
	return r.prefix + userID
}

// Create implements domain.UserRepository
func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.inner.Create(ctx, user)
}

// FindByEmail implements domain.UserRepository. Login-path lookups go
// straight to the store; only the per-request FindByID is cached.
func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.inner.FindByEmail(ctx, email)
}

// FindByID implements domain.UserRepository
func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	data, err := r.client.Get(ctx, r.key(id)).Result()
	if err == nil {
		var user domain.User
		if err := json.Unmarshal([]byte(data), &user); err == nil {
			return &user, nil
		}
		// Unreadable entry, fall through to the store
		r.client.Del(ctx, r.key(id))
	}

	user, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(user); err == nil {
		r.client.Set(ctx, r.key(id), encoded, r.ttl)
	}

	return user, nil
}

// UpdateTwoFactorSecret implements domain.UserRepository
func (r *CachedUserRepository) UpdateTwoFactorSecret(ctx context.Context, userID, secret string) error {
	if err := r.inner.UpdateTwoFactorSecret(ctx, userID, secret); err != nil {
		return err
	}
	return r.invalidate(ctx, userID)
}

// EnableTwoFactor implements domain.UserRepository
func (r *CachedUserRepository) EnableTwoFactor(ctx context.Context, userID string) error {
	if err := r.inner.EnableTwoFactor(ctx, userID); err != nil {
		return err
	}
	return r.invalidate(ctx, userID)
}

// DisableTwoFactor implements domain.UserRepository
func (r *CachedUserRepository) DisableTwoFactor(ctx context.Context, userID string) error {
	if err := r.inner.DisableTwoFactor(ctx, userID); err != nil {
		return err
	}
	return r.invalidate(ctx, userID)
}

// UpdateLastLogin implements domain.UserRepository
func (r *CachedUserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	if err := r.inner.UpdateLastLogin(ctx, userID); err != nil {
		return err
	}
	return r.invalidate(ctx, userID)
}

func (r *CachedUserRepository) invalidate(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached user %s: %w", userID, err)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*CachedUserRepository)(nil)
