package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
	defaultEnvFile   = ".env"
)

// tursoEnv maps the unprefixed variables the service has always read to
// their koanf keys. They may come from the process environment or a .env file.
var tursoEnv = map[string]string{
	"LOCAL_DB":           "database.local_path",
	"TURSO_AUTH_TOKEN":   "database.auth_token",
	"TURSO_DATABASE_URL": "database.url",
}

type Option func(*loadOptions)

type loadOptions struct {
	configDir string
	envFile   string
}

// WithConfigDir sets where base.yaml and <profile>.yaml are looked up.
// Defaults to "configs".
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.configDir = dir }
}

// WithEnvFile sets the dotenv file consulted for LOCAL_DB and TURSO_*.
// Defaults to ".env"; an empty path skips it.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// layer merges one configuration source into k.
type layer struct {
	name string
	load func(k *koanf.Koanf) error
}

// Load builds the Config from these layers, later ones winning:
//
//  1. built-in defaults
//  2. {configDir}/base.yaml, if present
//  3. {configDir}/{profile}.yaml, if present
//  4. LOCAL_DB, TURSO_AUTH_TOKEN, TURSO_DATABASE_URL from the env file, then
//     from the process environment
//  5. APP_-prefixed variables, matched against known keys so underscores
//     inside a key survive: APP_DATABASE_CIRCUIT_BREAKER_MAX_FAILURES is
//     database.circuit_breaker.max_failures
//
// The primary's URL and token are then defaulted, with a notice for each,
// and the result is validated.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	o := loadOptions{configDir: defaultConfigDir, envFile: defaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}

	layers := []layer{
		{"defaults", func(k *koanf.Koanf) error {
			return k.Load(confmap.Provider(defaults(), "."), nil)
		}},
		{"base.yaml", yamlLayer(filepath.Join(o.configDir, "base.yaml"))},
		{profile + ".yaml", yamlLayer(filepath.Join(o.configDir, profile+".yaml"))},
		{o.envFile, envFileLayer(o.envFile)},
		{"turso environment", func(k *koanf.Koanf) error {
			return k.Load(env.Provider(".", env.Opt{TransformFunc: tursoKey}), nil)
		}},
		{envPrefix + " environment", prefixedEnvLayer},
	}

	k := koanf.New(".")
	for _, l := range layers {
		if err := l.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.notices = cfg.Database.resolve()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// yamlLayer loads path when it exists, so the service can run from the
// environment alone.
func yamlLayer(path string) func(*koanf.Koanf) error {
	return func(k *koanf.Koanf) error {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return k.Load(file.Provider(path), yaml.Parser())
	}
}

// envFileLayer takes only the Turso variables from a dotenv file.
func envFileLayer(path string) func(*koanf.Koanf) error {
	return func(k *koanf.Koanf) error {
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}

		dk := koanf.New("|")
		if err := dk.Load(file.Provider(path), dotenv.Parser()); err != nil {
			return err
		}
		values := make(map[string]any, len(tursoEnv))
		for name, key := range tursoEnv {
			if dk.Exists(name) {
				values[key] = dk.String(name)
			}
		}
		return k.Load(confmap.Provider(values, "."), nil)
	}
}

func tursoKey(name, value string) (string, any) {
	if key, ok := tursoEnv[name]; ok {
		return key, value
	}
	return "", nil
}

func prefixedEnvLayer(k *koanf.Koanf) error {
	// database.url and database.auth_token have no defaults but may still be
	// set through APP_.
	known := make(map[string]string)
	for _, key := range append(k.Keys(), "database.url", "database.auth_token") {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			if key, ok := known[name]; ok {
				return key, value
			}
			return strings.ReplaceAll(name, "_", "."), value
		},
	}), nil)
}

// checkProfile rejects profiles that are empty or could escape configDir.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`):
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	case strings.Contains(profile, ".."):
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}
