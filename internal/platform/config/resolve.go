package config

import "strings"

const (
	libsqlScheme = "libsql://"
	httpsScheme  = "https://"
)

// resolve fills in the replica connection defaults and returns a notice for
// each value it had to default. Local mode has no primary, so nothing is
// resolved.
func (d *DatabaseConfig) resolve() []string {
	if d.Mode != ModeReplica {
		return nil
	}

	var notices []string

	if d.AuthToken == "" {
		notices = append(notices, "using empty auth token since TURSO_AUTH_TOKEN was not set")
	}

	if d.URL == "" {
		notices = append(notices, "using "+defaultDatabaseURL+" since TURSO_DATABASE_URL was not set")
		d.URL = defaultDatabaseURL
	}
	d.URL = PrimaryURL(d.URL)

	return notices
}

// PrimaryURL rewrites a libsql:// URL to https://, the scheme the embedded
// replica syncs over. Other URLs are returned unchanged.
func PrimaryURL(raw string) string {
	if rest, ok := strings.CutPrefix(raw, libsqlScheme); ok {
		return httpsScheme + rest
	}
	return raw
}
