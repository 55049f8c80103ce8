package cache

import (
	"context"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service is the Redis-backed Store backend, for deployments that share a
// normalization cache across instances.
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService connects to Redis and verifies the connection.
func NewService(cfg *config.CacheConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get returns the cached value for key.
func (s *Service) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("redis cache get failed", zap.Error(err))
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the configured TTL.
func (s *Service) Set(ctx context.Context, key, value string) {
	if err := s.client.Set(ctx, key, value, s.config.TTL).Err(); err != nil {
		common.LogWarn("redis cache set failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}

// NewStore builds the configured Store backend. A nil return means caching
// is disabled. A Redis connection failure falls back to the in-memory
// backend rather than failing startup.
func NewStore(cfg *config.CacheConfig) Store {
	if !cfg.Enabled {
		common.LogInfo("cache disabled")
		return nil
	}

	if cfg.Backend == "redis" {
		svc, err := NewService(cfg)
		if err == nil {
			common.LogInfo("redis cache connected", zap.String("addr", cfg.RedisAddr))
			return svc
		}
		common.LogWarn("redis unavailable, falling back to in-memory cache",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
	}

	return NewManager(cfg)
}
