package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
	"github.com/jsamuelsen11/libsql-todos/mocks"
)

func TestLiveness_SkipsChecks(t *testing.T) {
	t.Parallel()

	// CheckAll has no expectation, so calling it fails the test.
	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))

	requireStatus(t, rec, http.StatusOK)
	assertGolden(t, "liveness", rec)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		results    map[string]error
		wantStatus int
		golden     string
	}{
		{
			name:       "local store only",
			results:    map[string]error{"database": nil},
			wantStatus: http.StatusOK,
			golden:     "readiness_local",
		},
		{
			name:       "replica and primary healthy",
			results:    map[string]error{"database": nil, "libsql-primary": nil},
			wantStatus: http.StatusOK,
			golden:     "readiness_replica",
		},
		{
			name: "primary refusing connections",
			results: map[string]error{
				"database":       nil,
				"libsql-primary": errors.New("connection refused"),
			},
			wantStatus: http.StatusServiceUnavailable,
			golden:     "readiness_not_ready",
		},
		{
			name: "sync breaker open",
			results: map[string]error{
				"database": fmt.Errorf("database: sync: %w", domain.ErrUnavailable),
			},
			wantStatus: http.StatusServiceUnavailable,
			golden:     "readiness_sync_unavailable",
		},
		{
			name:       "nothing registered",
			results:    map[string]error{},
			wantStatus: http.StatusOK,
			golden:     "readiness_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)

			rec := httptest.NewRecorder()
			handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))

			requireStatus(t, rec, tt.wantStatus)
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			assertGolden(t, tt.golden, rec)
		})
	}
}

func TestReadiness_LogsFailedChecks(t *testing.T) {
	t.Parallel()

	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{
		"database":       nil,
		"libsql-primary": errors.New("libsql-primary: failing (circuit breaker open)"),
	})

	var logs bytes.Buffer
	ctx := logging.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/health/ready", http.NoBody)
	rec := httptest.NewRecorder()
	handlers.NewHealthHandler(registry).Readiness(rec, req)

	requireStatus(t, rec, http.StatusServiceUnavailable)
	out := logs.String()
	if got := strings.Count(out, "readiness check failed"); got != 1 {
		t.Fatalf("logged %d failures, want 1:\n%s", got, out)
	}
	if !strings.Contains(out, "check=libsql-primary") || !strings.Contains(out, "circuit breaker open") {
		t.Errorf("failure entry = %q, want check name and error", out)
	}
}
