package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gofintrack/internal/adapter/http/dto"
	"github.com/iho/gofintrack/internal/infrastructure/auth"
	"github.com/iho/gofintrack/internal/infrastructure/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, []byte(`{"a":1}`)))

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}

	assert.Error(t, printJSON(&buf, []byte("not json")))
}

func TestTokenCmd(t *testing.T) {
	out, err := execute(t, "token", "--owner", "owner-1", "--name", "Asha", "--secret", "s3cret", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("s3cret", time.Hour).Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.Subject)
	assert.Equal(t, "Asha", claims.Name)
}

func TestTokenCmdFallsBackToConfig(t *testing.T) {
	orig := loadConfig
	loadConfig = func() (*config.Config, error) {
		return &config.Config{JWTSecret: "from-env", JWTExpiration: time.Hour}, nil
	}
	defer func() { loadConfig = orig }()

	out, err := execute(t, "token", "--owner", "owner-1")
	require.NoError(t, err)

	_, err = auth.NewJWTManager("from-env", time.Hour).Verify(strings.TrimSpace(out))
	assert.NoError(t, err)
}

func TestTokenCmdRequiresOwner(t *testing.T) {
	_, err := execute(t, "token", "--secret", "s3cret")
	assert.Error(t, err)
}

func TestReportCmd(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth = r.URL.Path, r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"income":"10","expense":"4","balance":"6","count":2}`))
	}))
	defer srv.Close()

	out, err := execute(t, "report", "overview", "--url", srv.URL, "--token", "tok")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/analytics/overview", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Contains(t, out, "\"balance\": \"6\"")
}

func TestReportCmdRejectsUnknownSection(t *testing.T) {
	_, err := execute(t, "report", "budget", "--url", "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestReportCmdSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := execute(t, "report", "--url", srv.URL)
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestTransactionsListCmd(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"count":1,"transactions":[],"sections":[{"title":"Today","transactions":[
			{"id":"tx-1","type":"expense","amount":"12.5","description":"Lunch at the corner cafe","category":"food","date":"2024-03-10T00:00:00Z","created_at":"2024-03-10T12:00:00Z"}]}]}`))
	}))
	defer srv.Close()

	out, err := execute(t, "transactions", "list", "--url", srv.URL, "--type", "expense", "--sort", "highest")
	require.NoError(t, err)

	assert.Equal(t, "sort=highest&type=expense", gotQuery)
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "2024-03-10")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "1 transactions")
}

func TestTransactionsAddCmd(t *testing.T) {
	var (
		got    dto.CreateTransactionRequest
		gotKey string
		method string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		gotKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"tx-1"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "tx", "add", "--url", srv.URL,
		"--amount", "4.20", "--category", "food", "--description", "Coffee", "--date", "2024-03-09")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.NotEmpty(t, gotKey)
	assert.Equal(t, "expense", got.Type)
	assert.Equal(t, "4.20", got.Amount)
	assert.Equal(t, "2024-03-09", got.Date)
	assert.Contains(t, out, "tx-1")
}

func TestTransactionsDeleteCmd(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := execute(t, "transactions", "delete", "tx-1", "--url", srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/v1/transactions/tx-1", path)
	assert.Equal(t, "deleted tx-1\n", out)
}

func TestMigrateCmd(t *testing.T) {
	origLoad, origUp, origDown := loadConfig, migrateUp, migrateDown
	defer func() { loadConfig, migrateUp, migrateDown = origLoad, origUp, origDown }()

	loadConfig = func() (*config.Config, error) {
		return &config.Config{DatabaseURL: "postgres://db", MigrationsPath: "/migrations"}, nil
	}

	var calls []string
	migrateUp = func(databaseURL, migrationsPath string, _ zerolog.Logger) error {
		calls = append(calls, "up "+databaseURL+" "+migrationsPath)
		return nil
	}
	migrateDown = func(databaseURL, migrationsPath string, _ zerolog.Logger) error {
		calls = append(calls, "down "+databaseURL)
		return nil
	}

	_, err := execute(t, "migrate", "up")
	require.NoError(t, err)
	_, err = execute(t, "migrate", "down")
	require.NoError(t, err)

	assert.Equal(t, []string{"up postgres://db /migrations", "down postgres://db"}, calls)
}
