package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
)

// CORS returns middleware that answers preflight requests and sets
// Access-Control headers for the configured origins. With no allowed origins
// it is a pass-through. The request and correlation ID headers are exposed
// to browser clients.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		ExposedHeaders: []string{headerRequestID, headerCorrelationID},
	})
	return c.Handler
}
