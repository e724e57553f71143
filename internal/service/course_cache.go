package service

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/config"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
)

// ListCache is the short-TTL read cache on the course list path, keyed by
// owner email. A miss is never an error; cache failures degrade to the
// store.
type ListCache interface {
	Get(ctx context.Context, ownerEmail string) ([]model.Course, bool)
	Set(ctx context.Context, ownerEmail string, courses []model.Course)
	Invalidate(ctx context.Context, ownerEmail string)
}

// RedisListCache backs the list cache with Redis so multiple instances
// share it.
type RedisListCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewRedisListCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisListCache {
	return &RedisListCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "course_cache").Logger(),
	}
}

func (c *RedisListCache) Get(ctx context.Context, ownerEmail string) ([]model.Course, bool) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.OwnerCoursesKey(ownerEmail)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("Cache read failed")
		}
		return nil, false
	}

	var courses []model.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		c.log.Warn().Err(err).Msg("Cache entry corrupt, dropping")
		c.Invalidate(ctx, ownerEmail)
		return nil, false
	}
	return courses, true
}

func (c *RedisListCache) Set(ctx context.Context, ownerEmail string, courses []model.Course) {
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKey.OwnerCoursesKey(ownerEmail), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Cache write failed")
	}
}

func (c *RedisListCache) Invalidate(ctx context.Context, ownerEmail string) {
	if err := c.rdb.Del(ctx, config.CacheKey.OwnerCoursesKey(ownerEmail)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Cache invalidate failed")
	}
}

// MemoryListCache is the in-process fallback used when no Redis URL is
// configured. Same TTL semantics, single instance only.
type MemoryListCache struct {
	cache *gocache.Cache
}

func NewMemoryListCache(ttl time.Duration) *MemoryListCache {
	return &MemoryListCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryListCache) Get(_ context.Context, ownerEmail string) ([]model.Course, bool) {
	val, found := c.cache.Get(config.CacheKey.OwnerCoursesKey(ownerEmail))
	if !found {
		return nil, false
	}
	courses, ok := val.([]model.Course)
	return courses, ok
}

func (c *MemoryListCache) Set(_ context.Context, ownerEmail string, courses []model.Course) {
	c.cache.Set(config.CacheKey.OwnerCoursesKey(ownerEmail), courses, gocache.DefaultExpiration)
}

func (c *MemoryListCache) Invalidate(_ context.Context, ownerEmail string) {
	c.cache.Delete(config.CacheKey.OwnerCoursesKey(ownerEmail))
}
