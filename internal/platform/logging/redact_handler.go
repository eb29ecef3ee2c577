package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists lowercase header names whose values are never
// logged. Request logging in the HTTP middleware reads the same set.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
}

// sensitiveFields are attribute keys and struct field names redacted
// regardless of value. AuthToken covers a logged config.DatabaseConfig.
var sensitiveFields = []string{
	"password",
	"secret",
	"token",
	"auth_token",
	"authtoken",
	"AuthToken",
	"encryption_key",
}

var (
	// bearerPattern matches "Bearer <token>" values.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// jwtPattern matches raw JWTs; Turso auth tokens are JWTs. Ten characters
	// per segment keeps version strings out.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	// dsnTokenPattern matches an authToken query parameter in a libsql DSN.
	dsnTokenPattern = regexp.MustCompile(`(?i)authToken=[^&\s]+`)
)

// newRedactAttr returns a masq ReplaceAttr that redacts by field name and,
// for values that slipped past call sites, by pattern.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(sensitiveFields)+4)

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret_"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(dsnTokenPattern),
	)

	return masq.New(opts...)
}
