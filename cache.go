package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// cache wraps an optional Redis client. All methods are nil-safe so call
// sites need no branching when REDIS_URL is unset: a nil cache misses
// every get and drops every set.
type cache struct {
	rdb *redis.Client
}

// newCache connects to Redis when a URL is configured, otherwise returns
// nil. A Redis outage at startup is logged and tolerated; caching is an
// optimization, not a dependency.
func newCache(redisURL string) *cache {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, caching disabled")
		return nil
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, caching disabled")
		return nil
	}
	log.Info().Msg("redis cache ready")
	return &cache{rdb: rdb}
}

// getJSON loads key into dest. Returns false on miss, decode error, or when
// caching is disabled.
func (ca *cache) getJSON(ctx context.Context, key string, dest any) bool {
	if ca == nil {
		return false
	}
	raw, err := ca.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// setJSON stores value under key with a TTL. Errors are logged and dropped.
func (ca *cache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if ca == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := ca.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// invalidate removes keys, e.g. the today-stats entry after a new log row.
func (ca *cache) invalidate(ctx context.Context, keys ...string) {
	if ca == nil || len(keys) == 0 {
		return
	}
	ca.rdb.Del(ctx, keys...)
}

// acquireLock takes a best-effort SETNX lock, used to deduplicate
// concurrent report generation for the same user/date. When caching is
// disabled the lock is always granted — a duplicate generation then ends as
// a last-write-wins upsert, which is tolerated.
func (ca *cache) acquireLock(ctx context.Context, key string, ttl time.Duration) bool {
	if ca == nil {
		return true
	}
	ok, err := ca.rdb.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// releaseLock drops a lock taken with acquireLock.
func (ca *cache) releaseLock(ctx context.Context, key string) {
	if ca == nil {
		return
	}
	ca.rdb.Del(ctx, key)
}
