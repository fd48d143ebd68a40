package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/penshort/userapi/internal/model"
)

// Cache key prefixes and TTLs.
const (
	userKeyPrefix     = "user:"
	negCacheKeySuffix = ":neg"

	// DefaultUserTTL is the TTL for cached user data.
	DefaultUserTTL = time.Hour

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 5 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

func userKey(id uuid.UUID) string {
	return userKeyPrefix + id.String()
}

// GetUser retrieves a user from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	result, err := c.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	return &model.User{
		ID:    id,
		Name:  result["name"],
		Email: result["email"],
	}, nil
}

// SetUser stores a user in cache and clears any negative entry for it.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userKey(user.ID)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"name":  user.Name,
		"email": user.Email,
	})
	pipe.Expire(ctx, key, DefaultUserTTL)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// DeleteUser removes a user and its negative entry from cache.
func (c *Cache) DeleteUser(ctx context.Context, id uuid.UUID) error {
	key := userKey(id)

	if err := c.client.Del(ctx, key, key+negCacheKeySuffix).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}

	return nil
}

// IsUserNegativelyCached checks if a user ID is in negative cache.
func (c *Cache) IsUserNegativelyCached(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := c.client.Exists(ctx, userKey(id)+negCacheKeySuffix).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check negative cache: %w", err)
	}

	return exists > 0, nil
}

// SetUserNotFound marks a user ID as not found.
func (c *Cache) SetUserNotFound(ctx context.Context, id uuid.UUID) error {
	err := c.client.SetEx(ctx, userKey(id)+negCacheKeySuffix, "", NegativeCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}
