// Package redis is a ResultCache backed by Redis, for deployments that run
// more than one bot instance behind the same chat. Entries are JSON documents
// written with the cache TTL as the Redis expiry.
package redis

import (
	"context"
	"crypto/sha1" //nolint:gosec // key derivation only
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "vacancybot:results"

// Cache implements ports.ResultCache.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger

	warnedUnavailable atomic.Bool
}

func NewCache(client *goredis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = ports.DefaultResultTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "redis_result_cache"),
	}
}

// Key is the Redis key of (userID, queryText). Query text is hashed so that
// arbitrary user input never ends up in the key space.
func Key(userID int64, queryText string) string {
	sum := sha1.Sum([]byte(vacancy.NormalizeText(queryText))) //nolint:gosec // not a security boundary
	return fmt.Sprintf("%s:%d:%s", keyPrefix, userID, hex.EncodeToString(sum[:]))
}

func (c *Cache) Get(ctx context.Context, userID int64, queryText string) (ports.CachedResult, bool, error) {
	raw, err := c.client.Get(ctx, Key(userID, queryText)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ports.CachedResult{}, false, nil
	}
	if err != nil {
		c.warnUnavailableOnce(ctx, err)
		return ports.CachedResult{}, false, err
	}

	var result ports.CachedResult
	if err = json.Unmarshal(raw, &result); err != nil {
		return ports.CachedResult{}, false, fmt.Errorf("decode cached result: %w", err)
	}
	return result, true, nil
}

func (c *Cache) Put(ctx context.Context, userID int64, queryText string, result ports.CachedResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode cached result: %w", err)
	}
	if err = c.client.Set(ctx, Key(userID, queryText), raw, c.ttl).Err(); err != nil {
		c.warnUnavailableOnce(ctx, err)
		return err
	}
	return nil
}

func (c *Cache) warnUnavailableOnce(ctx context.Context, err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.logger.WarnContext(ctx, "Redis unavailable, falling back to stored results", "error", err)
	}
}
