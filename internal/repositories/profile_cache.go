package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

// ProfileCacheRepository caches public profiles in Redis
type ProfileCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached profiles
}

// NewProfileCacheRepository creates a new repository instance with the given TTL
func NewProfileCacheRepository(client *redis.Client, expiration time.Duration) *ProfileCacheRepository {
	return &ProfileCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func profileKey(id uuid.UUID) string {
	return fmt.Sprintf("user_profile:%s", id)
}

// Get returns the cached profile, or ErrNotFound on a miss.
func (r *ProfileCacheRepository) Get(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	key := profileKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	logger.FromContext(ctx).Infow(
		"key", key,
		"hit", err == nil,
		"error", err,
	)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}

	var profile models.PublicProfile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, fmt.Errorf("decode cached profile %s: %w", key, err)
	}
	return &profile, nil
}

// Set stores the profile with the configured expiration
func (r *ProfileCacheRepository) Set(ctx context.Context, profile *models.PublicProfile) error {
	key := profileKey(profile.ID)

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.FromContext(ctx).Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Delete drops the cached profile
func (r *ProfileCacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	key := profileKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.FromContext(ctx).Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
