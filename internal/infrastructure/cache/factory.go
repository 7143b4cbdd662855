package cache

import (
	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	identityapp "github.com/Codesaur1618/Skandaenterpriese/internal/application/identity"
	"github.com/Codesaur1618/Skandaenterpriese/internal/infrastructure/config"
	"go.uber.org/zap"
)

// GrantSourceFactory builds the grant source the gate reads from,
// cached in Redis when one is reachable
type GrantSourceFactory struct {
	redisConfig        config.RedisConfig
	logger             *zap.Logger
	allowStoreFallback bool
}

// GrantSourceFactoryOption is a functional option for configuring the factory
type GrantSourceFactoryOption func(*GrantSourceFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) GrantSourceFactoryOption {
	return func(f *GrantSourceFactory) {
		f.logger = logger
	}
}

// WithStoreFallback controls whether to read grants straight from the
// store when Redis is unavailable. Default is true (allow fallback).
func WithStoreFallback(allow bool) GrantSourceFactoryOption {
	return func(f *GrantSourceFactory) {
		f.allowStoreFallback = allow
	}
}

// NewGrantSourceFactory creates a new factory
func NewGrantSourceFactory(cfg config.RedisConfig, opts ...GrantSourceFactoryOption) *GrantSourceFactory {
	f := &GrantSourceFactory{
		redisConfig:        cfg,
		logger:             zap.NewNop(),
		allowStoreFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateSource wraps the store-backed source in a Redis cache when Redis
// answers. On fallback the invalidator is nil: there is nothing cached,
// so grant updates have nothing to drop.
func (f *GrantSourceFactory) CreateSource(store *authz.RepositoryGrantSource) (authz.GrantSource, identityapp.GrantCacheInvalidator, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisGrantCache(redisCfg, store, WithCacheLogger(f.logger))
	if err == nil {
		f.logger.Info("using Redis grant cache")
		return cache, cache, nil
	}

	if !f.allowStoreFallback {
		return nil, nil, err
	}

	f.logger.Warn("Redis unavailable, reading grants straight from the store. "+
		"Permission checks will hit the database on every request.",
		zap.Error(err),
	)
	return store, nil, nil
}
