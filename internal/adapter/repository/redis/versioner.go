package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SnapshotVersioner implements usecase.SnapshotVersioner with one INCR
// counter per owner. A missing counter reads as version 0.
type SnapshotVersioner struct {
	client *redis.Client
	prefix string
}

// NewSnapshotVersioner creates a new SnapshotVersioner.
func NewSnapshotVersioner(client *redis.Client) *SnapshotVersioner {
	return &SnapshotVersioner{
		client: client,
		prefix: "snapshot_version:",
	}
}

// Current returns the owner's snapshot version.
func (v *SnapshotVersioner) Current(ctx context.Context, ownerID string) (int64, error) {
	version, err := v.client.Get(ctx, v.prefix+ownerID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return version, err
}

// Bump advances the owner's snapshot version and returns the new value.
func (v *SnapshotVersioner) Bump(ctx context.Context, ownerID string) (int64, error) {
	return v.client.Incr(ctx, v.prefix+ownerID).Result()
}
