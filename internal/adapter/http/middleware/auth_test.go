package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/infrastructure/auth"
)

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	token, err := manager.Generate(&domain.Owner{ID: "owner-1", Name: "Asha"})
	require.NoError(t, err)

	expired, err := auth.NewJWTManager("secret", -time.Minute).Generate(&domain.Owner{ID: "owner-1"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOwner  string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantOwner: "owner-1"},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusOK, wantOwner: "owner-1"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				owner, ok := GetOwnerFromContext(r.Context())
				require.True(t, ok)
				gotOwner = owner.ID
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(manager)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOwner, gotOwner)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestGetOwnerFromContextRejectsEmptyOwner(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetOwnerFromContext(req.Context())
	assert.False(t, ok)

	_, ok = GetOwnerFromContext(WithOwner(req.Context(), &domain.Owner{}))
	assert.False(t, ok)
}
