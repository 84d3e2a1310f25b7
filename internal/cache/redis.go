package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"medialit/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache wraps the Redis client. A nil *RedisCache is valid and turns every
// method into a no-op, which is how the service runs without Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// PromptUsage is the per-section breakdown and distinct user count of one prompt.
type PromptUsage struct {
	Sections      map[string]int64 `json:"sections"`
	DistinctUsers int64            `json:"distinct_users"`
}

// NewRedisCache connects to REDIS_URL and verifies the connection.
func NewRedisCache(ctx context.Context, cfg *config.Config) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	c := NewWithClient(redis.NewClient(opts), time.Duration(cfg.CacheTTL)*time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		c.client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return c, nil
}

// NewWithClient wraps an existing client. ttl bounds how long usage keys live after the
// last write; zero keeps them forever.
func NewWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func promptSectionsKey(promptID int) string {
	return fmt.Sprintf("prompt:usage:%d:sections", promptID)
}

func promptUsersKey(promptID int) string {
	return fmt.Sprintf("prompt:usage:%d:users", promptID)
}

// RecordPromptUsage counts a click against its section and remembers the user.
// Empty section or user skips that part.
func (c *RedisCache) RecordPromptUsage(ctx context.Context, promptID int, section, userID string) error {
	if !c.Enabled() || (section == "" && userID == "") {
		return nil
	}
	sectionsKey, usersKey := promptSectionsKey(promptID), promptUsersKey(promptID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if section != "" {
			pipe.HIncrBy(ctx, sectionsKey, section, 1)
			if c.ttl > 0 {
				pipe.Expire(ctx, sectionsKey, c.ttl)
			}
		}
		if userID != "" {
			pipe.SAdd(ctx, usersKey, userID)
			if c.ttl > 0 {
				pipe.Expire(ctx, usersKey, c.ttl)
			}
		}
		return nil
	})
	return err
}

// PromptUsage reads the breakdown written by RecordPromptUsage. Missing keys read as empty.
func (c *RedisCache) PromptUsage(ctx context.Context, promptID int) (*PromptUsage, error) {
	usage := &PromptUsage{Sections: map[string]int64{}}
	if !c.Enabled() {
		return usage, nil
	}

	raw, err := c.client.HGetAll(ctx, promptSectionsKey(promptID)).Result()
	if err != nil {
		return nil, err
	}
	for section, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt section counter %q: %w", section, err)
		}
		usage.Sections[section] = n
	}

	usage.DistinctUsers, err = c.client.SCard(ctx, promptUsersKey(promptID)).Result()
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// Allow is a fixed-window counter: at most limit hits per key per window. It reports
// whether this hit is allowed and how long until the window resets.
func (c *RedisCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if !c.Enabled() || limit <= 0 {
		return true, 0, nil
	}
	key = "throttle:" + key

	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
	}

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		// key lost its expiry (e.g. crash between INCR and EXPIRE), start a new window
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
		ttl = window
	}
	return n <= int64(limit), ttl, nil
}
