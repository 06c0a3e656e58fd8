package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jobsift:seen:"

// Redis is a Registry backed by a shared Redis instance, for deployments
// where several processes must agree on what was already ingested.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis at the given URL (redis://host:port) and
// verifies the connection with a ping.
func NewRedis(redisURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("dedup: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("dedup: redis ping failed: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Seen reports whether the canonical id exists in Redis.
func (r *Redis) Seen(ctx context.Context, canonicalID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+canonicalID).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: exists check: %w", err)
	}
	return n > 0, nil
}

// Add records the canonical id with the configured TTL. A zero TTL keeps
// ids forever.
func (r *Redis) Add(ctx context.Context, canonicalID string) error {
	if canonicalID == "" {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+canonicalID, 1, r.ttl).Err(); err != nil {
		return fmt.Errorf("dedup: recording id: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
