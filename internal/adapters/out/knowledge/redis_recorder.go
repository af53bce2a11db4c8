// Package knowledge implements the knowledge graph recorder port on
// Redis. Facts live in hashes keyed by kind and subject, so an upsert
// replaces the previous value without any prior-fact bookkeeping;
// events are appended to streams for consumers that want history.
package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder implements the KnowledgeGraphRecorder port.
type RedisRecorder struct {
	client *redis.Client
}

// NewRedisRecorder creates a recorder from a Redis URL in the format
// redis://[:password@]host[:port][/database].
func NewRedisRecorder(redisURL string) (*RedisRecorder, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &RedisRecorder{client: redis.NewClient(opts)}, nil
}

// NewRedisRecorderFromClient wraps an existing client. Used by tests.
func NewRedisRecorderFromClient(client *redis.Client) *RedisRecorder {
	return &RedisRecorder{client: client}
}

// UpsertFact stores the latest value for the (kind, keys) subject,
// replacing whatever value was there before.
func (r *RedisRecorder) UpsertFact(ctx context.Context, kind string, keys []string, value any, ts time.Time) error {
	err := r.client.HSet(ctx, factKey(kind, keys),
		"value", fmt.Sprint(value),
		"ts", ts.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to upsert fact %s: %w", factKey(kind, keys), err)
	}
	return nil
}

// RecordEvent appends a timestamped event to the (kind, keys) stream.
func (r *RedisRecorder) RecordEvent(ctx context.Context, kind string, keys []string, value any, ts time.Time) error {
	err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: eventKey(kind, keys),
		Values: map[string]any{
			"value": fmt.Sprint(value),
			"ts":    ts.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to record event %s: %w", eventKey(kind, keys), err)
	}
	return nil
}

// GetFact reads back the latest value for a subject, with found=false
// when no fact exists.
func (r *RedisRecorder) GetFact(ctx context.Context, kind string, keys []string) (string, bool, error) {
	value, err := r.client.HGet(ctx, factKey(kind, keys), "value").Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get fact %s: %w", factKey(kind, keys), err)
	}
	return value, true, nil
}

// Ping checks if Redis is reachable.
func (r *RedisRecorder) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

func factKey(kind string, keys []string) string {
	return "fact:" + kind + ":" + strings.Join(keys, ":")
}

func eventKey(kind string, keys []string) string {
	return "events:" + kind + ":" + strings.Join(keys, ":")
}
