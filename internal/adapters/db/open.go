package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tursodatabase/go-libsql"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for local mode

	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/telemetry"
)

const (
	systemLibSQL = "libsql"
	systemSQLite = "sqlite"
)

// Open connects to the configured database, ensures the todos table exists,
// and performs an initial sync. It is called once at startup; the returned
// Store must be shut down by the caller.
func Open(
	ctx context.Context,
	cfg config.DatabaseConfig,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) (*Store, error) {
	var (
		store *Store
		err   error
	)

	switch cfg.Mode {
	case config.ModeReplica:
		store, err = openReplicaContext(ctx, cfg, metrics, logger)
	case config.ModeLocal:
		store, err = openLocal(cfg, metrics, logger)
	default:
		err = fmt.Errorf("unsupported database mode %q", cfg.Mode)
	}
	if err != nil {
		return nil, err
	}

	if err := store.ensureSchema(ctx); err != nil {
		return nil, errors.Join(err, store.Shutdown())
	}
	if err := store.Sync(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("initial sync: %w", err), store.Shutdown())
	}

	store.logger.Info("database ready",
		slog.String("mode", cfg.Mode),
		slog.String("local_path", cfg.LocalPath),
	)
	return store, nil
}

// openReplicaContext bounds openReplica by ctx. The connector performs its
// first sync while being constructed and takes no context, so on expiry the
// open is abandoned and its store is shut down once it finally returns.
func openReplicaContext(ctx context.Context, cfg config.DatabaseConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*Store, error) {
	type result struct {
		store *Store
		err   error
	}

	done := make(chan result, 1)
	go func() {
		store, err := openReplica(cfg, metrics, logger)
		done <- result{store: store, err: err}
	}()

	select {
	case res := <-done:
		return res.store, res.err
	case <-ctx.Done():
		go func() {
			if res := <-done; res.store != nil {
				_ = res.store.Shutdown()
			}
		}()
		return nil, fmt.Errorf("opening replica of %s: %w", cfg.URL, ctx.Err())
	}
}

// openReplica opens an embedded replica of the primary at cfg.URL, backed by
// the file at cfg.LocalPath.
func openReplica(cfg config.DatabaseConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*Store, error) {
	opts := []libsql.Option{libsql.WithReadYourWrites(true)}
	// The driver rejects an empty token option; a local sqld needs none.
	if cfg.AuthToken != "" {
		opts = append(opts, libsql.WithAuthToken(cfg.AuthToken))
	}
	if cfg.SyncInterval > 0 {
		opts = append(opts, libsql.WithSyncInterval(cfg.SyncInterval))
	}
	if cfg.EncryptionKey != "" {
		opts = append(opts, libsql.WithEncryption(cfg.EncryptionKey))
	}

	connector, err := libsql.NewEmbeddedReplicaConnector(cfg.LocalPath, cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating replica connector for %s: %w", cfg.LocalPath, err)
	}

	sync := func() error {
		_, err := connector.Sync()
		return err
	}

	store := newStore(sql.OpenDB(connector), systemLibSQL, sync, cfg.CircuitBreaker, metrics, logger)
	store.closeFn = connector.Close
	return store, nil
}

// openLocal opens a plain SQLite file with no primary.
func openLocal(cfg config.DatabaseConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.LocalPath, err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return newStore(db, systemSQLite, nil, cfg.CircuitBreaker, metrics, logger), nil
}
