// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"messagely_backend/internal/feature/messages/usecase"
	usersentity "messagely_backend/internal/feature/users/domain/entity"
)

// CachingProfileDirectory decorates a ProfileDirectory with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying directory. Cached fields are the immutable
// contact fields only (username, names, phone), so entries never go stale.
type CachingProfileDirectory struct {
	inner     usecase.ProfileDirectory
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingProfileDirectoryがProfileDirectoryを実装していることをコンパイル時に検証します。
var _ usecase.ProfileDirectory = (*CachingProfileDirectory)(nil)

// NewCachingProfileDirectory decorates a ProfileDirectory with Redis caching.
// If ttl is 0, it defaults to 15 minutes. If namespace is empty, it uses "profiles".
func NewCachingProfileDirectory(rdb *redis.Client, ttl time.Duration, inner usecase.ProfileDirectory, namespace string) *CachingProfileDirectory {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "profiles"
	}
	return &CachingProfileDirectory{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByUsernames resolves profiles from cache first, then falls back to the
// underlying directory for the misses in a single call.
func (c *CachingProfileDirectory) FindByUsernames(ctx context.Context, usernames []string) (map[string]usersentity.Profile, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil || len(usernames) == 0 {
		return c.inner.FindByUsernames(ctx, usernames)
	}

	out := make(map[string]usersentity.Profile, len(usernames))
	misses := usernames

	// 1) Check cache with a single MGET
	keys := make([]string, 0, len(usernames))
	for _, name := range usernames {
		keys = append(keys, c.cacheKey(name))
	}
	if vals, err := c.rdb.MGet(ctx, keys...).Result(); err == nil && len(vals) == len(keys) {
		misses = make([]string, 0, len(usernames))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				misses = append(misses, usernames[i])
				continue
			}
			var p usersentity.Profile
			if err := json.Unmarshal([]byte(s), &p); err != nil || p.Username == "" {
				// Delete corrupted cache entry
				_ = c.rdb.Del(ctx, keys[i]).Err()
				misses = append(misses, usernames[i])
				continue
			}
			out[p.Username] = p
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	// 2) Fallback to the underlying directory for the misses
	fetched, err := c.inner.FindByUsernames(ctx, misses)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	for name, p := range fetched {
		out[name] = p
		if b, err := json.Marshal(p); err == nil {
			_ = c.rdb.Set(ctx, c.cacheKey(name), b, c.ttl).Err()
		}
	}

	return out, nil
}

// cacheKey generates the cache key for a username.
func (c *CachingProfileDirectory) cacheKey(username string) string {
	return c.namespace + ":" + safe(username)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
