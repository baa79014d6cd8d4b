package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBlocksPerClient(t *testing.T) {
	limited := 0
	rl := NewRateLimiter(1, 1).OnLimited(func() { limited++ })
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:1000"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := send("10.0.0.1:2000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected same host on another port to be throttled, got %d", code)
	}
	if code := send("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", code)
	}
	if limited != 1 {
		t.Fatalf("expected one limited callback, got %d", limited)
	}
}

func TestGetIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	if got := getIP(req); got != "192.0.2.1" {
		t.Fatalf("expected remote host, got %s", got)
	}

	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := getIP(req); got != "198.51.100.7" {
		t.Fatalf("expected X-Real-IP, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := getIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}
}

func TestCleanupLimitersRemovesIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	rl.getLimiter("stale", now.Add(-2*time.Hour))
	rl.getLimiter("fresh", now.Add(-time.Minute))

	if removed := rl.CleanupLimiters(now, time.Hour); removed != 1 {
		t.Fatalf("expected one limiter removed, got %d", removed)
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Fatalf("expected fresh limiter to be kept")
	}
}
