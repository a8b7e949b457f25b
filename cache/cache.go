// Package cache holds encoded public list responses so repeated reads skip the store.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dcode-github/luxury_realty/backend/utils"
)

const (
	keyPrefix        = "cache:"
	generationPrefix = "cachegen:"
	scanCount        = 100
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	// Generation is part of every key of resource and changes on each Invalidate.
	// A response read before an invalidation is therefore stored where no later
	// reader looks.
	Generation(ctx context.Context, resource string) int64
	// Invalidate drops every cached response of one resource.
	Invalidate(ctx context.Context, resource string)
}

// Key derives a stable key from the resource, its generation and the query
// string; parameter order does not matter.
func Key(resource string, generation int64, query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := append([]string(nil), query[key]...)
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return keyPrefix + resource + ":" + strconv.FormatInt(generation, 10) + ":" + hex.EncodeToString(sum[:])
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		utils.Logger.Debugf("Cache hit for key: %s", key)
		return data, true
	}
	if !errors.Is(err, redis.Nil) {
		utils.Logger.WithError(err).Warnf("Redis GET failed for key %s", key)
	}
	utils.Logger.Debugf("Cache miss for key: %s", key)
	return nil, false
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to cache response for key %s", key)
	}
}

// Generation reads the counter bumped by Invalidate; a missing or unreadable
// counter counts as 0.
func (c *RedisCache) Generation(ctx context.Context, resource string) int64 {
	gen, err := c.client.Get(ctx, generationPrefix+resource).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		utils.Logger.WithError(err).Warnf("Redis GET failed for %s generation", resource)
	}
	return gen
}

func (c *RedisCache) Invalidate(ctx context.Context, resource string) {
	if err := c.client.Incr(ctx, generationPrefix+resource).Err(); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to bump %s cache generation", resource)
	}

	pattern := keyPrefix + resource + ":*"

	var keysToDelete []string
	var cursor uint64
	for {
		var batch []string
		var err error
		batch, cursor, err = c.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			utils.Logger.WithError(err).Errorf("Redis SCAN failed for pattern '%s'", pattern)
			return
		}
		keysToDelete = append(keysToDelete, batch...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		utils.Logger.WithError(err).Errorf("Failed deleting %d cache keys for %s", len(keysToDelete), resource)
		return
	}
	utils.Logger.Infof("Invalidated %d cached %s responses.", len(keysToDelete), resource)
}

// Nop is used when no Redis is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, string, []byte)        {}
func (Nop) Generation(context.Context, string) int64   { return 0 }
func (Nop) Invalidate(context.Context, string)         {}
