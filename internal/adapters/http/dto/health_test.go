package dto_test

import (
	"errors"
	"testing"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
)

func TestToHealthResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		results     map[string]error
		wantStatus  string
		wantHealthy bool
		wantChecks  map[string]string
	}{
		{
			name:        "no checkers is ready",
			results:     map[string]error{},
			wantStatus:  dto.HealthReady,
			wantHealthy: true,
			wantChecks:  map[string]string{},
		},
		{
			name:        "all healthy",
			results:     map[string]error{"database": nil, "libsql-primary": nil},
			wantStatus:  dto.HealthReady,
			wantHealthy: true,
			wantChecks:  map[string]string{"database": "ok", "libsql-primary": "ok"},
		},
		{
			name:        "one failing",
			results:     map[string]error{"database": nil, "libsql-primary": errors.New("connection refused")},
			wantStatus:  dto.HealthNotReady,
			wantHealthy: false,
			wantChecks:  map[string]string{"database": "ok", "libsql-primary": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, healthy := dto.ToHealthResponse(tt.results)
			if healthy != tt.wantHealthy {
				t.Errorf("healthy = %v, want %v", healthy, tt.wantHealthy)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if len(got.Checks) != len(tt.wantChecks) {
				t.Fatalf("Checks = %v, want %v", got.Checks, tt.wantChecks)
			}
			for k, v := range tt.wantChecks {
				if got.Checks[k] != v {
					t.Errorf("Checks[%q] = %q, want %q", k, got.Checks[k], v)
				}
			}
		})
	}
}
