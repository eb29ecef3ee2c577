// Command server runs the libSQL todos API. Dependencies are wired with
// samber/do v2. The store is opened (and, as a replica, synced) before the
// listener binds, and SIGINT or SIGTERM drains requests before the store and
// telemetry are closed.
package main

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/clients/primary"
	"github.com/jsamuelsen11/libsql-todos/internal/adapters/db"
	adapthttp "github.com/jsamuelsen11/libsql-todos/internal/adapters/http"
	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/libsql-todos/internal/app"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/health"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/httpclient"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/telemetry"
	"github.com/jsamuelsen11/libsql-todos/internal/ports"
)

const (
	defaultProfile        = "local"
	primaryName           = "libsql-primary"
	storeOpenTimeout      = 60 * time.Second
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// closers runs shutdown steps last-registered first, logging failures.
type closers []closer

type closer struct {
	what string
	fn   func() error
}

func (c *closers) add(what string, fn func() error) {
	*c = append(*c, closer{what: what, fn: fn})
}

func (c closers) closeAll(logger *slog.Logger) {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].fn(); err != nil {
			logger.Error("closing "+c[i].what+" failed", slog.Any("error", err))
		}
	}
}

func run() error {
	cfg, err := config.Load(cmp.Or(os.Getenv("APP_PROFILE"), defaultProfile))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	for _, notice := range cfg.Notices() {
		logger.Warn(notice)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	var cleanup closers
	defer func() { cleanup.closeAll(logger) }()
	cleanup.add("telemetry", func() error {
		flushCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		return providers.Shutdown(flushCtx)
	})

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)
	provide(ctx, injector, cfg, logger)

	// A signal during the initial sync cancels the open.
	store, err := do.Invoke[*db.Store](injector)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	cleanup.add("database", store.Shutdown)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}
	registerChecks(injector, cfg, store, logger)

	if err := server.Listen(); err != nil {
		return err
	}
	served := make(chan error, 1)
	go func() { served <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-served:
		return fmt.Errorf("server stopped: %w", err)
	}
	stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("draining requests failed", slog.Any("error", err))
	}
	<-served

	logger.Info("shutdown complete")
	return nil
}

// provide registers lazy constructors. ctx bounds opening the store.
func provide(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*db.Store, error) {
		openCtx, cancel := context.WithTimeout(ctx, storeOpenTimeout)
		defer cancel()
		return db.Open(openCtx, cfg.Database, do.MustInvoke[*telemetry.Metrics](i), logger)
	})
	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		return app.NewTodoService(do.MustInvoke[*db.Store](i), logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		return httpclient.New(&cfg.Client, httpclient.Target{
			Name:      primaryName,
			BaseURL:   cfg.Database.URL,
			AuthToken: cfg.Database.AuthToken,
		}, do.MustInvoke[*telemetry.Metrics](i), logger), nil
	})
	do.Provide(injector, func(do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(cfg.Client.Timeout)), nil
	})
	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		return adapthttp.NewRouter(
			handlers.NewTodoHandler(do.MustInvoke[ports.TodoService](i)),
			handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
			middleware.Stack(cfg.Server, do.MustInvoke[*telemetry.Metrics](i), logger),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), logger), nil
	})
}

// registerChecks wires readiness. The primary is only checked when the store
// replicates from it.
func registerChecks(injector *do.RootScope, cfg *config.Config, store *db.Store, logger *slog.Logger) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(store)

	if cfg.Database.Mode == config.ModeReplica {
		registry.Register(primary.NewChecker(do.MustInvoke[*httpclient.Client](injector), logger))
	}
}
