// Package primary checks the remote libSQL primary that the embedded replica
// syncs from. It reports reachability only; replication itself is driven by
// the store adapter.
package primary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/httpclient"
	"github.com/jsamuelsen11/libsql-todos/internal/ports"
)

var _ ports.HealthChecker = (*Checker)(nil)

// healthPath is served by both sqld and Turso-hosted databases.
const healthPath = "/health"

// Checker implements ports.HealthChecker against the primary's health endpoint.
type Checker struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewChecker creates a Checker backed by the given HTTP client.
func NewChecker(client *httpclient.Client, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{client: client, logger: logger}
}

// Name returns the identifier used when registering with a
// [ports.HealthRegistry]. It matches the service name of the underlying
// client so traces and readiness output line up.
func (c *Checker) Name() string {
	return c.client.Name()
}

// HealthCheck issues GET {url}/health. While the client's circuit breaker is
// open the check fails without a network call or a rate limiter token. A
// half-open breaker still sends the trial request, and a failed trial
// reports the primary as degraded.
func (c *Checker) HealthCheck(ctx context.Context) error {
	breakerErr := c.client.BreakerState()
	if errors.Is(breakerErr, httpclient.ErrBreakerOpen) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, breakerErr)
	}

	resp, err := c.client.Get(ctx, healthPath)
	if err != nil {
		c.logger.WarnContext(ctx, "primary health check failed",
			slog.String("url", c.client.BaseURL()+healthPath),
			slog.Any("error", err),
		)
		if breakerErr != nil {
			return fmt.Errorf("%w: %w: %w", domain.ErrUnavailable, breakerErr, err)
		}
		return fmt.Errorf("%s: %w: %w", c.Name(), domain.ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return translateStatus(c.Name(), resp.StatusCode)
}

// translateStatus maps a non-5xx health response to a domain error.
// 5xx responses never reach here; the client reports them as errors.
func translateStatus(name string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: auth token rejected (status %d)", name, status)
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: health endpoint not found: %w", name, domain.ErrNotFound)
	default:
		return fmt.Errorf("%s: unexpected status %d", name, status)
	}
}
