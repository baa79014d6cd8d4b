package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a new Redis client. The first ping is retried with
// exponential backoff for up to maxWait; a zero maxWait pings once.
func NewClient(ctx context.Context, redisURL string, maxWait time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	var b backoff.BackOff = &backoff.StopBackOff{}
	if maxWait > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 100 * time.Millisecond
		eb.MaxInterval = 2 * time.Second
		eb.MaxElapsedTime = maxWait
		b = eb
	}

	// Verify connection
	if err := backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(b, ctx)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
