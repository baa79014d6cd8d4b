package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRecovery returns middleware that turns a handler panic into a 500 with
// the request ID in the body. http.ErrAbortHandler is re-raised so the
// server can drop the connection.
func NewRecovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := chimiddleware.GetReqID(r.Context())

				logger.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":      "internal server error",
					"request_id": requestID,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
