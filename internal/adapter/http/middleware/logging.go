package middleware

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ownerSlot lets handlers further down the chain report the owner back to
// the access log, since they only see derived request contexts.
type ownerSlot struct {
	id string
}

const ownerSlotKey ContextKey = "log_owner"

func noteOwner(ctx context.Context, ownerID string) {
	if slot, ok := ctx.Value(ownerSlotKey).(*ownerSlot); ok {
		slot.id = ownerID
	}
}

// LoggingMiddleware logs HTTP requests.
type LoggingMiddleware struct {
	logger zerolog.Logger
}

// NewLoggingMiddleware creates a new LoggingMiddleware.
func NewLoggingMiddleware(logger zerolog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// Wrap wraps an http.Handler with logging.
func (m *LoggingMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slot := &ownerSlot{}
		if owner, ok := GetOwnerFromContext(r.Context()); ok {
			slot.id = owner.ID
		}

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), ownerSlotKey, slot)))

		event := m.logger.Info()
		if wrapped.statusCode >= http.StatusInternalServerError {
			event = m.logger.Error()
		}

		if slot.id != "" {
			event = event.Str("owner_id", slot.id)
		}

		event.
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
