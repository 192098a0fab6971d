package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/api/metrics"
	"github.com/useraccounts/user-service/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// UserCache is a read-through cache of SafeUser projections keyed by id.
// Every operation fails soft: a Redis outage degrades to repository reads,
// it never surfaces to the caller.
type UserCache struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewUserCache(client *redis.Client, logger zerolog.Logger) *UserCache {
	return &UserCache{client: client, logger: logger}
}

func cacheKey(id string) string {
	return "user:" + id
}

// Get returns the cached projection for id, if any.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.SafeUser, bool) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var user domain.SafeUser
	if err := json.Unmarshal(raw, &user); err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache entry corrupt")
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return &user, true
}

// Set stores the projection under its id with the cache TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.SafeUser) {
	if user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(user.ID), raw, cacheTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

// Invalidate drops the entry for id. Called on every mutation so stale
// projections never outlive an update, block, or delete.
func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}
