// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// Stack assembles the service's chain in this order:
//
//	Recovery → RequestID → CorrelationID → CORS → OpenTelemetry → Logging → Timeout → Handler
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/telemetry"
)

// Stack returns the full inbound chain for the todos service. metrics may be
// nil when telemetry is disabled.
func Stack(cfg config.ServerConfig, metrics *telemetry.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		CORS(cfg.CORS),
		OpenTelemetry(metrics),
		Logging(logger),
		Timeout(cfg.WriteTimeout),
	)
}

// Chain composes middleware so that the first argument is outermost.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// statusRecorder remembers the status and body size a handler produced so
// recovery, tracing, and access logging can report them afterwards.
type statusRecorder struct {
	http.ResponseWriter
	status    int
	bytes     int64
	committed bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status only; later calls are dropped.
func (s *statusRecorder) WriteHeader(code int) {
	if s.committed {
		return
	}
	s.status = code
	s.committed = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.committed = true
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
