// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/feature/challenge/usecase"
)

const defaultTTL = 5 * time.Minute

// TTLFunc returns how long an entry written at now may stay cached.
type TTLFunc func(now time.Time) time.Duration

// FixedTTL returns a TTLFunc that always yields d.
func FixedTTL(d time.Duration) TTLFunc {
	return func(time.Time) time.Duration { return d }
}

// CachingResultRepository decorates a ResultRepository with Redis caching.
// Reads go through the cache and saves invalidate the challenge's entry.
type CachingResultRepository struct {
	inner     usecase.ResultRepository
	rdb       *redis.Client
	ttl       TTLFunc
	now       func() time.Time
	namespace string
}

var _ usecase.ResultRepository = (*CachingResultRepository)(nil)

// NewCachingResultRepository decorates a ResultRepository with Redis caching.
// ttl is evaluated on every cache write; nil means a fixed 5 minutes.
// If namespace is empty, it uses "results". A nil rdb disables caching.
func NewCachingResultRepository(rdb *redis.Client, ttl TTLFunc, inner usecase.ResultRepository, namespace string) *CachingResultRepository {
	if ttl == nil {
		ttl = FixedTTL(defaultTTL)
	}
	if namespace == "" {
		namespace = "results"
	}
	return &CachingResultRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		now:       time.Now,
		namespace: namespace,
	}
}

// expiry returns the TTL for an entry written now. Non-positive values fall back to the default.
func (c *CachingResultRepository) expiry() time.Duration {
	if d := c.ttl(c.now()); d > 0 {
		return d
	}
	return defaultTTL
}

// Save stores the result and drops its cache entry.
func (c *CachingResultRepository) Save(ctx context.Context, r entity.Result) error {
	if err := c.inner.Save(ctx, r); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: a stale entry expires with the TTL anyway
	if err := c.rdb.Del(ctx, c.cacheKey(r.Challenge)).Err(); err != nil {
		slog.Warn("failed to invalidate result cache", "challenge", r.Challenge, "error", err)
	}
	return nil
}

// FindByName checks the cache first then falls back to the inner repository.
// Misses are not cached, so a result saved later is visible immediately.
func (c *CachingResultRepository) FindByName(ctx context.Context, challenge string) (entity.Result, error) {
	if c.rdb == nil {
		return c.inner.FindByName(ctx, challenge)
	}

	key := c.cacheKey(challenge)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Result
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the database
	out, err := c.inner.FindByName(ctx, challenge)
	if err != nil {
		return entity.Result{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
	}

	return out, nil
}

func (c *CachingResultRepository) cacheKey(challenge string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(challenge))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
