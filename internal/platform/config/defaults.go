package config

const (
	defaultServerPort = 8080

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	// defaultDatabaseURL is used when TURSO_DATABASE_URL is not set. It is
	// the address a local sqld listens on.
	defaultDatabaseURL = "http://localhost:8080"
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
// database.url and database.auth_token are deliberately absent so that
// resolveDatabase can tell a missing value from a configured one.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                 "127.0.0.1",
		"server.port":                 defaultServerPort,
		"server.read_timeout":         "5s",
		"server.write_timeout":        "10s",
		"server.idle_timeout":         "120s",
		"server.cors.allowed_origins": []string{},
		"server.cors.allowed_methods": []string{"GET", "POST", "OPTIONS"},
		"server.cors.allowed_headers": []string{"Content-Type", "X-Request-ID", "X-Correlation-ID"},

		"log.level":  "info",
		"log.format": "json",

		"database.mode":                            ModeReplica,
		"database.local_path":                      "",
		"database.sync_interval":                   "0s",
		"database.encryption_key":                  "",
		"database.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"database.circuit_breaker.timeout":         "30s",
		"database.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"client.timeout":                         "5s",
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  2,
		"client.rate_limit.burst_size":           4,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "libsql-todos",
	}
}
