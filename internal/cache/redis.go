package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"postapi/internal/config"
	"postapi/internal/model"
)

// NewRedisClient creates a go-redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisPostCache implements PostListCache on Redis. Listings are stored as
// JSON under posts:owner:<id> with a TTL backstop; writes to an owner's
// posts remove the key instead of waiting for expiry.
type RedisPostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPostCache creates a cache with the given entry time-to-live.
func NewRedisPostCache(client *redis.Client, ttl time.Duration) *RedisPostCache {
	return &RedisPostCache{client: client, ttl: ttl}
}

var _ PostListCache = (*RedisPostCache)(nil)

func (c *RedisPostCache) Get(ctx context.Context, ownerID int64) ([]model.Post, bool) {
	raw, err := c.client.Get(ctx, ownerKey(ownerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logCacheError("cache_get_failed", ownerID, err)
		}
		return nil, false
	}

	var posts []model.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		// A corrupt entry is as good as no entry; drop it.
		logCacheError("cache_decode_failed", ownerID, err)
		_ = c.client.Del(ctx, ownerKey(ownerID)).Err()
		return nil, false
	}
	return posts, true
}

func (c *RedisPostCache) Set(ctx context.Context, ownerID int64, posts []model.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		logCacheError("cache_encode_failed", ownerID, err)
		return
	}
	if err := c.client.Set(ctx, ownerKey(ownerID), raw, c.ttl).Err(); err != nil {
		logCacheError("cache_set_failed", ownerID, err)
	}
}

func (c *RedisPostCache) Invalidate(ctx context.Context, ownerID int64) {
	if err := c.client.Del(ctx, ownerKey(ownerID)).Err(); err != nil {
		logCacheError("cache_invalidate_failed", ownerID, err)
	}
}

func logCacheError(event string, ownerID int64, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "warn",
		"component": "cache",
		"event":     event,
		"owner_id":  ownerID,
		"error":     err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
