package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/gofintrack/internal/domain"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	released      []string
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func (f *fakeIdempotencyStore) Release(ctx context.Context, key string) error {
	f.released = append(f.released, key)
	return nil
}

func newIdempotentRequest(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, key)
	return req.WithContext(WithOwner(req.Context(), &domain.Owner{ID: "owner-1"}))
}

func TestIdempotencyMiddleware_IgnoresStoreErrors(t *testing.T) {
	var called bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, newIdempotentRequest("key-err"))

	if called {
		t.Fatalf("handler should not be called when store errors")
	}

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_ReleasesFailedResponses(t *testing.T) {
	var updated bool
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})).ServeHTTP(rr, newIdempotentRequest("key-fail"))

	if updated {
		t.Fatalf("expected error responses not to be cached")
	}
	if len(store.released) != 1 || store.released[0] != "owner-1:key-fail" {
		t.Fatalf("expected key to be released, got %v", store.released)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyWhenHandlerPanics(t *testing.T) {
	var updated bool
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	func() {
		defer func() {
			if rec := recover(); rec != "boom" {
				t.Fatalf("expected panic to propagate, got %v", rec)
			}
		}()
		handler.ServeHTTP(httptest.NewRecorder(), newIdempotentRequest("key-panic"))
	}()

	if updated {
		t.Fatalf("expected panicking request not to be cached")
	}
	if len(store.released) != 1 || store.released[0] != "owner-1:key-panic" {
		t.Fatalf("expected key to be released, got %v", store.released)
	}
}

func TestIdempotencyMiddleware_SkipsNonMutatingRequests(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatalf("store should not be consulted for GET")
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set(IdempotencyKeyHeader, "key")
	rr := httptest.NewRecorder()

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("expected next handler to be called")
	}
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	stored, _ := json.Marshal(storedResponse{Status: http.StatusCreated, Body: []byte(`{"id":"tx-1"}`)})
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, stored, nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called when cached response exists")
	})).ServeHTTP(rr, newIdempotentRequest("key-123"))

	if rr.Header().Get(IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected %s header to be set", IdempotencyReplayHeader)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected replayed status 201, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != `{"id":"tx-1"}` {
		t.Fatalf("unexpected cached body: %s", got)
	}
}

func TestIdempotencyMiddleware_ConflictWhileInFlight(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte("processing"), nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run while the key is in flight")
	})).ServeHTTP(rr, newIdempotentRequest("key-busy"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	var (
		updatedKey  string
		updatedBody []byte
	)
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updatedKey = key
			updatedBody = append([]byte(nil), response...)
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})).ServeHTTP(rr, newIdempotentRequest("key-456"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
	if updatedKey != "owner-1:key-456" {
		t.Fatalf("expected owner-scoped key, got %q", updatedKey)
	}

	var stored storedResponse
	if err := json.Unmarshal(updatedBody, &stored); err != nil {
		t.Fatalf("stored response is not valid json: %v", err)
	}
	if stored.Status != http.StatusCreated || string(stored.Body) != `{"ok":true}` {
		t.Fatalf("unexpected stored response %+v", stored)
	}
}
