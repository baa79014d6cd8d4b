package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// OwnerContextKey is the context key for the authenticated owner
	OwnerContextKey ContextKey = "owner"
)

// AuthMiddleware creates an authentication middleware. Every request must
// carry "Authorization: Bearer <token>"; the token subject becomes the owner.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					unauthorized(w, "token has expired")
					return
				}
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), claims.Owner())))
		})
	}
}

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner *domain.Owner) context.Context {
	if owner != nil {
		noteOwner(ctx, owner.ID)
	}
	return context.WithValue(ctx, OwnerContextKey, owner)
}

// GetOwnerFromContext extracts the authenticated owner from context
func GetOwnerFromContext(ctx context.Context) (*domain.Owner, bool) {
	owner, ok := ctx.Value(OwnerContextKey).(*domain.Owner)
	if !ok || owner == nil || owner.ID == "" {
		return nil, false
	}
	return owner, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="fintrack"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   domain.ErrUnauthorized.Error(),
		"message": message,
	})
}
