package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/gofintrack/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// IdempotencyMiddleware replays the stored response of a mutating request
// that repeats an Idempotency-Key. Keys are scoped to the authenticated owner.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A zero ttl
// uses usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

type storedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodDelete {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		if owner, ok := GetOwnerFromContext(r.Context()); ok {
			key = owner.ID + ":" + key
		}

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists {
			var stored storedResponse
			if len(cached) == 0 || json.Unmarshal(cached, &stored) != nil || stored.Status == 0 {
				http.Error(w, "request with this idempotency key is in progress", http.StatusConflict)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			w.WriteHeader(stored.Status)
			_, _ = w.Write(stored.Body)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}

		completed := false
		defer func() {
			if !completed {
				m.release(r.Context(), key)
			}
		}()

		next.ServeHTTP(recorder, r)
		completed = true

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			m.release(r.Context(), key)
			return
		}

		data, err := json.Marshal(storedResponse{Status: recorder.statusCode, Body: recorder.body.Bytes()})
		if err == nil {
			err = m.store.Update(r.Context(), key, data, m.ttl)
		}
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
		}
	})
}

// release frees key so a retry can run the request again.
func (m *IdempotencyMiddleware) release(ctx context.Context, key string) {
	if err := m.store.Release(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
