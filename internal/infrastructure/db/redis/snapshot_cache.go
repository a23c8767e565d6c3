package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "opstracker:snapshot"

// SnapshotCache keeps the serialized bootstrap payload (users + records) in
// Redis so repeated /api/data loads skip two collection scans. Every mutation
// invalidates it; a short TTL bounds staleness if an invalidation is lost.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache wraps the given Redis client. A non-positive ttl disables
// expiry and leaves invalidation as the only freshness mechanism.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached payload, or (nil, nil) on a miss.
func (c *SnapshotCache) Get(ctx context.Context) ([]byte, error) {
	b, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// Set stores the payload with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, snapshotKey, payload, c.ttl).Err()
}

// Invalidate drops the cached payload. Called after every successful
// user or record mutation.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, snapshotKey).Err()
}
