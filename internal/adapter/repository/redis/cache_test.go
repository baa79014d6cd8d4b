package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/gofintrack/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "report:owner-1:3:2024-03-01", []byte(`{"overview":{}}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "report:owner-1:3:2024-03-01")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"overview":{}}` {
		t.Fatalf("unexpected value %s", val)
	}

	if !mr.Exists("cache:report:owner-1:3:2024-03-01") {
		t.Fatalf("expected key to be stored under the cache prefix")
	}
}

func TestCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	_, err := NewCache(client).Get(context.Background(), "absent")
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected miss for deleted key, got %v", err)
	}
}
