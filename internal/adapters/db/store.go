// Package db provides the outbound adapter for the todos table. A Store owns
// the process-wide database handle: it is opened once at startup, shared by
// every request, and closed on shutdown.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/telemetry"
	"github.com/jsamuelsen11/libsql-todos/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TodoStore     = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS todos(task varchar NOT NULL)`
	selectTodosSQL = `SELECT task FROM todos`
	insertTodoSQL  = `INSERT INTO todos VALUES (?)`
)

// syncFunc reconciles the local replica with its primary. Local mode has none.
type syncFunc func() error

// Store implements ports.TodoStore over a *sql.DB.
type Store struct {
	db      *sql.DB
	system  string
	sync    syncFunc
	closeFn func() error
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// newStore wraps db. The breaker guards sync only; local queries never trip it.
func newStore(
	db *sql.DB,
	system string,
	sync syncFunc,
	cbCfg config.CircuitBreakerConfig,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "replica-sync",
		MaxRequests: uint32(max(cbCfg.HalfOpenLimit, 0)), //nolint:gosec // bounded by config validation
		Timeout:     cbCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cbCfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Store{
		db:      db,
		system:  system,
		sync:    sync,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// ListTodos scans the todos table in the order the store yields rows.
func (s *Store) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	todos := []todo.Todo{}

	err := s.observe(ctx, "select", func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, selectTodosSQL)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			// Tables created by older deployments allow NULL tasks.
			var task sql.NullString
			if err := rows.Scan(&task); err != nil {
				return err
			}
			todos = append(todos, todo.New(task.String))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	return todos, nil
}

// InsertTodo inserts one row with the task bound as a parameter.
func (s *Store) InsertTodo(ctx context.Context, t todo.Todo) error {
	err := s.observe(ctx, "insert", func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, insertTodoSQL, t.Task)
		return err
	})
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

// Sync reconciles the replica with the primary through the circuit breaker.
// While the breaker is open the call fails immediately with
// domain.ErrUnavailable. Sync is a no-op in local mode.
func (s *Store) Sync(ctx context.Context) error {
	if s.sync == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("syncing replica: %w", err)
	}

	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.observe(ctx, "sync", func(context.Context) error {
			return s.sync()
		})
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("syncing replica: %w: %w", domain.ErrUnavailable, err)
	case err != nil:
		return fmt.Errorf("syncing replica: %w", err)
	}
	return nil
}

// Name identifies the store in the health registry.
func (s *Store) Name() string {
	return "database"
}

// HealthCheck pings the local database and reports an open sync breaker.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping failed: %w", err)
	}
	if s.sync == nil {
		return nil
	}

	switch state := s.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return errors.New("database: degraded (sync circuit breaker half-open)")
	default:
		return fmt.Errorf("database: failing (sync circuit breaker %s)", state)
	}
}

// Shutdown closes the database handle and any driver connector. It matches
// the shutdown hook signature used by the DI container.
func (s *Store) Shutdown() error {
	err := s.db.Close()
	if s.closeFn != nil {
		err = errors.Join(err, s.closeFn())
	}
	return err
}

// ensureSchema creates the todos table if it does not exist.
func (s *Store) ensureSchema(ctx context.Context) error {
	err := s.observe(ctx, "create_table", func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, createTableSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating todos table: %w", err)
	}
	return nil
}

// observe runs fn inside a client span and records operation metrics.
func (s *Store) observe(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := time.Now()

	tracer := otel.GetTracerProvider().Tracer("db")
	ctx, span := tracer.Start(ctx, "db "+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system.name", s.system),
			attribute.String("db.operation.name", operation),
			attribute.String("db.collection.name", "todos"),
		),
	)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	s.recordMetrics(ctx, operation, start, err)
	return err
}

func (s *Store) recordMetrics(ctx context.Context, operation string, start time.Time, err error) {
	result := telemetry.ResultSuccess
	if err != nil {
		result = telemetry.ResultError
	}
	s.metrics.RecordStore(ctx, start,
		telemetry.AttrDBSystem.String(s.system),
		telemetry.AttrDBOperation.String(operation),
		telemetry.AttrResult.String(result),
	)
}
