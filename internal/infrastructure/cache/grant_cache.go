package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultGrantTTL = 10 * time.Minute

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisGrantCache caches per-role grant sets in Redis in front of a
// store-backed source. Redis failures degrade to store reads; only a
// store failure surfaces to the caller, so a cache outage slows
// permission checks without denying them.
type RedisGrantCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	source     authz.GrantSource
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisGrantCacheOption is a functional option for configuring the cache
type RedisGrantCacheOption func(*RedisGrantCache)

// WithGrantTTL sets how long a cached grant set lives. Invalidation on
// grant updates makes the TTL a backstop, not the consistency mechanism.
func WithGrantTTL(ttl time.Duration) RedisGrantCacheOption {
	return func(c *RedisGrantCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisGrantCacheOption {
	return func(c *RedisGrantCache) {
		c.logger = logger
	}
}

// NewRedisGrantCache creates a Redis-backed grant cache over the given source
func NewRedisGrantCache(cfg RedisConfig, source authz.GrantSource, opts ...RedisGrantCacheOption) (*RedisGrantCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisGrantCache{
		client:     client,
		ownsClient: true,
		source:     source,
		ttl:        defaultGrantTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisGrantCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisGrantCacheWithClient(client *redis.Client, source authz.GrantSource, opts ...RedisGrantCacheOption) *RedisGrantCache {
	cache := &RedisGrantCache{
		client:     client,
		ownsClient: false,
		source:     source,
		ttl:        defaultGrantTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisGrantCache) grantCacheKey(roleID uuid.UUID) string {
	return fmt.Sprintf("grants:role:%s", roleID.String())
}

// GrantsForRole returns the role's grant set, reading through to the
// store on a miss and caching what it finds
func (c *RedisGrantCache) GrantsForRole(ctx context.Context, roleID uuid.UUID) (identity.GrantSet, error) {
	cacheKey := c.grantCacheKey(roleID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var grants identity.GrantSet
		if err := json.Unmarshal(data, &grants); err == nil {
			c.logger.Debug("Cache hit for role grants", zap.String("role_id", roleID.String()))
			return grants, nil
		}
		// Delete corrupted cache entry
		c.logger.Warn("Corrupted grant cache entry, rereading from store",
			zap.String("role_id", roleID.String()))
		_ = c.client.Del(ctx, cacheKey)
	} else if err != redis.Nil {
		c.logger.Error("Failed to get role grants from cache",
			zap.String("role_id", roleID.String()),
			zap.Error(err))
	}

	grants, err := c.source.GrantsForRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(grants); err == nil {
		if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Error("Failed to cache role grants",
				zap.String("role_id", roleID.String()),
				zap.Error(err))
		}
	}

	return grants, nil
}

// InvalidateRole drops the cached grant set for a role. Called after a
// grant update commits; a failed delete only extends the stale window
// until the TTL expires.
func (c *RedisGrantCache) InvalidateRole(ctx context.Context, roleID uuid.UUID) {
	cacheKey := c.grantCacheKey(roleID)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate role grants in cache",
			zap.String("role_id", roleID.String()),
			zap.Error(err))
		return
	}

	c.logger.Debug("Invalidated role grants in cache", zap.String("role_id", roleID.String()))
}

// Close releases the Redis client when the cache owns it
func (c *RedisGrantCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisGrantCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisGrantCache implements GrantSource
var _ authz.GrantSource = (*RedisGrantCache)(nil)
