package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// problems collects every invalid setting so one startup failure lists them all.
type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

func (p *problems) oneOf(key, got string, allowed ...string) {
	if !slices.Contains(allowed, got) {
		p.addf("%s must be one of: %s; got %q", key, strings.Join(allowed, ", "), got)
	}
}

func (p *problems) positive(key string, ok bool) {
	if !ok {
		p.addf("%s must be positive", key)
	}
}

// Validate reports every invalid setting, joined into one error.
func (c *Config) Validate() error {
	var p problems

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		p.addf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	p.positive("server.read_timeout", c.Server.ReadTimeout > 0)
	p.positive("server.write_timeout", c.Server.WriteTimeout > 0)

	p.oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error")
	p.oneOf("log.format", c.Log.Format, "json", "text")

	c.Database.check(&p)

	p.positive("client.timeout", c.Client.Timeout > 0)
	c.Client.CircuitBreaker.check(&p, "client")
	if rl := c.Client.RateLimit; rl.RequestsPerSecond < 0 {
		p.addf("client.rate_limit.requests_per_second must not be negative")
	} else if rl.RequestsPerSecond > 0 && rl.BurstSize < 1 {
		p.addf("client.rate_limit.burst_size must be >= 1, got %d", rl.BurstSize)
	}

	if t := c.Telemetry; t.Enabled {
		p.oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")
		if t.Exporter == "otlp" && t.Endpoint == "" {
			p.addf("telemetry.endpoint must not be empty when exporter is otlp")
		}
	}

	return errors.Join(p...)
}

// check validates the store settings. The URL is only read in replica mode,
// after resolve has rewritten libsql:// to https://.
func (d *DatabaseConfig) check(p *problems) {
	p.oneOf("database.mode", d.Mode, ModeReplica, ModeLocal)
	if d.LocalPath == "" {
		p.addf("database.local_path must not be empty (set LOCAL_DB)")
	}
	if d.Mode == ModeReplica {
		u, err := url.Parse(d.URL)
		switch {
		case err != nil:
			p.addf("database.url is invalid: %w", err)
		case u.Scheme != "http" && u.Scheme != "https":
			p.addf("database.url must use http, https, or libsql; got %q", u.Scheme)
		case u.Host == "":
			p.addf("database.url must include a host")
		}
	}
	if d.SyncInterval < 0 {
		p.addf("database.sync_interval must not be negative")
	}
	d.CircuitBreaker.check(p, "database")
}

func (cb *CircuitBreakerConfig) check(p *problems, section string) {
	if cb.MaxFailures < 1 {
		p.addf("%s.circuit_breaker.max_failures must be >= 1, got %d", section, cb.MaxFailures)
	}
}
