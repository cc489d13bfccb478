package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const suggestionKeyPrefix = "suggest:"

// RedisSuggestionCache stores location search suggestions as JSON with a TTL.
// Reads that fail for any reason are treated as misses.
type RedisSuggestionCache struct {
	rc  *redis.Client
	ttl time.Duration
}

func NewRedisSuggestionCache(rc *redis.Client, ttl time.Duration) *RedisSuggestionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisSuggestionCache{rc: rc, ttl: ttl}
}

// OpenRedis returns a client for addr, or nil when addr is empty.
func OpenRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password})
}

func (c *RedisSuggestionCache) Get(ctx context.Context, key string) ([]string, bool) {
	if c.rc == nil {
		return nil, false
	}

	s, err := c.rc.Get(ctx, suggestionKeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("suggestion cache read failed: key=%q err=%v", key, err)
		}
		return nil, false
	}

	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		log.Printf("suggestion cache decode failed: key=%q err=%v", key, err)
		return nil, false
	}
	return out, true
}

func (c *RedisSuggestionCache) Set(ctx context.Context, key string, suggestions []string) error {
	if c.rc == nil {
		return errors.New("suggestion cache: redis client is nil")
	}

	b, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("suggestion cache: encode: %w", err)
	}
	if err := c.rc.Set(ctx, suggestionKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("suggestion cache: set %q: %w", key, err)
	}
	return nil
}
