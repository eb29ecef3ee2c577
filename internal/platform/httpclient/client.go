// Package httpclient talks HTTP to the remote libSQL primary. Every call
// passes a circuit breaker and an optional rate limiter, carries the inbound
// request and correlation IDs plus W3C trace context, and is recorded as an
// http.client.request.* metric.
//
//	client := httpclient.New(&cfg.Client, httpclient.Target{
//	    Name:      "libsql-primary",
//	    BaseURL:   cfg.Database.URL,
//	    AuthToken: cfg.Database.AuthToken,
//	}, metrics, logger)
//	resp, err := client.Get(ctx, "/health")
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/libsql-todos/internal/platform/httpclient"

type idKey uint8

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// WithRequestID marks ctx so calls made with it send X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithCorrelationID marks ctx so calls made with it send X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// Breaker state errors returned by BreakerState.
var (
	ErrBreakerOpen     = errors.New("failing (circuit breaker open)")
	ErrBreakerHalfOpen = errors.New("degraded (circuit breaker half-open)")
)

// StatusError reports a 5xx from the primary. The body is already drained.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("primary returned status %d", e.StatusCode)
}

// Target identifies the server a Client talks to. An empty AuthToken sends no
// Authorization header, which is what a local sqld expects.
type Target struct {
	Name      string
	BaseURL   string
	AuthToken string
}

type Client struct {
	http    *http.Client
	target  Target
	breaker *gobreaker.CircuitBreaker[*http.Response]
	limiter *rate.Limiter
	metrics *telemetry.Metrics
}

// New builds a Client for target. A nil metrics skips recording and a nil
// logger drops breaker state changes.
func New(cfg *config.ClientConfig, target Target, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	target.BaseURL = strings.TrimRight(target.BaseURL, "/")

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		target:  target,
		metrics: metrics,
	}
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        target.Name,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("primary circuit breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)
	}
	return c
}

// Name is the target name, used in traces, metrics, and readiness output.
func (c *Client) Name() string { return c.target.Name }

func (c *Client) BaseURL() string { return c.target.BaseURL }

// Get sends GET BaseURL+path. See Do for the response contract.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.target.BaseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", c.target.Name, err)
	}
	return c.Do(ctx, req)
}

// Do sends req once the breaker admits it and the limiter grants a token.
// A 5xx counts against the breaker and comes back as a *StatusError with a
// nil response. Any other response is returned open for the caller to close.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	status := 0

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		ctx, span := otel.Tracer(tracerName).Start(ctx, req.Method+" "+c.target.Name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				telemetry.AttrHTTPMethod.String(req.Method),
				telemetry.AttrURLPath.String(req.URL.Path),
				telemetry.AttrPeerService.String(c.target.Name),
			),
		)
		defer span.End()

		req = req.WithContext(ctx)
		c.setHeaders(ctx, req)

		r, err := c.http.Do(req)
		if err == nil {
			status = r.StatusCode
			span.SetAttributes(telemetry.AttrHTTPStatus.Int(status))
			if status >= http.StatusInternalServerError {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
				r, err = nil, &StatusError{StatusCode: status}
			}
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return r, err
	})

	c.metrics.RecordPrimary(ctx, start,
		telemetry.AttrHTTPMethod.String(req.Method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.target.Name),
		telemetry.AttrResult.String(result(status, err)),
	)
	return resp, err
}

// BreakerState reports the breaker without sending anything or spending a
// limiter token: nil when closed, otherwise an error wrapping ErrBreakerOpen
// or ErrBreakerHalfOpen.
func (c *Client) BreakerState() error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: %w", c.target.Name, ErrBreakerHalfOpen)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: %w", c.target.Name, ErrBreakerOpen)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.target.Name, state)
	}
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	if c.target.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.target.AuthToken)
	}
	if id, _ := ctx.Value(requestIDKey).(string); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if id, _ := ctx.Value(correlationIDKey).(string); id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// result is counted outside the breaker so rejected calls show up as
// circuit_open.
func result(status int, err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return telemetry.ResultCircuitOpen
	case err != nil, status >= http.StatusBadRequest:
		return telemetry.ResultError
	}
	return telemetry.ResultSuccess
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
