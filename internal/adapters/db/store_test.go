package db

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/config"
)

func localConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Mode:      config.ModeLocal,
		LocalPath: filepath.Join(t.TempDir(), "todos.db"),
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   2,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), localConfig(t), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Shutdown() })
	return store
}

// syncingStore returns a local store whose sync calls fn.
func syncingStore(t *testing.T, fn syncFunc) *Store {
	t.Helper()
	cfg := localConfig(t)
	db, err := sql.Open("sqlite", cfg.LocalPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	store := newStore(db, systemLibSQL, fn, cfg.CircuitBreaker, nil, nil)
	t.Cleanup(func() { _ = store.Shutdown() })
	require.NoError(t, store.ensureSchema(context.Background()))
	return store
}

func TestOpen_Local_EmptyTable(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	todos, err := store.ListTodos(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos, "empty list must be non-nil")
	assert.Empty(t, todos)
}

func TestOpen_UnsupportedMode(t *testing.T) {
	t.Parallel()

	cfg := localConfig(t)
	cfg.Mode = "cluster"

	_, err := Open(context.Background(), cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster")
}

func TestOpen_Replica_ReachesPrimary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantBearer bool
	}{
		{name: "empty token for local sqld", token: ""},
		{name: "turso token", token: "turso-token-value", wantBearer: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var hits atomic.Int32
			var authHeader atomic.Value
			primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				authHeader.Store(r.Header.Get("Authorization"))
				hits.Add(1)
				w.WriteHeader(http.StatusInternalServerError)
			}))
			t.Cleanup(primary.Close)

			cfg := localConfig(t)
			cfg.Mode = config.ModeReplica
			cfg.URL = primary.URL
			cfg.AuthToken = tt.token
			cfg.SyncInterval = time.Minute
			cfg.EncryptionKey = "replica-at-rest-key"

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			_, err := Open(ctx, cfg, nil, nil)
			require.Error(t, err, "a failing primary cannot yield a ready store")
			assert.NotContains(t, err.Error(), "must not be empty")

			require.Eventually(t, func() bool { return hits.Load() > 0 }, 5*time.Second, 10*time.Millisecond,
				"connector never contacted the primary")

			got, _ := authHeader.Load().(string)
			if tt.wantBearer {
				assert.Contains(t, got, tt.token)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestOpen_Replica_HonorsContextDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(primary.Close)
	t.Cleanup(func() { close(release) })

	cfg := localConfig(t)
	cfg.Mode = config.ModeReplica
	cfg.URL = primary.URL

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Open(ctx, cfg, nil, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	t.Parallel()

	cfg := localConfig(t)
	ctx := context.Background()

	first, err := Open(ctx, cfg, nil, nil)
	require.NoError(t, err)
	require.NoError(t, first.InsertTodo(ctx, todo.New("persisted")))
	require.NoError(t, first.Shutdown())

	second, err := Open(ctx, cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Shutdown() })

	todos, err := second.ListTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []todo.Todo{{Task: "persisted"}}, todos)
}

func TestStore_InsertThenList_PreservesOrder(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	for _, task := range []string{"a", "", "buy milk", "a"} {
		require.NoError(t, store.InsertTodo(ctx, todo.New(task)))
	}

	todos, err := store.ListTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []todo.Todo{{Task: "a"}, {Task: ""}, {Task: "buy milk"}, {Task: "a"}}, todos)
}

func TestStore_InsertBindsTaskAsParameter(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	task := `x'); DROP TABLE todos; --`
	require.NoError(t, store.InsertTodo(ctx, todo.New(task)))

	todos, err := store.ListTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []todo.Todo{{Task: task}}, todos)
}

func TestStore_ConcurrentInserts(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.InsertTodo(ctx, todo.New(string(rune('a'+i))))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	todos, err := store.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, n)
}

func TestStore_ListAfterShutdown_ReturnsError(t *testing.T) {
	t.Parallel()

	store, err := Open(context.Background(), localConfig(t), nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Shutdown())

	_, err = store.ListTodos(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing todos")

	err = store.InsertTodo(context.Background(), todo.New("late"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting todo")
}

func TestStore_Sync_LocalModeIsNoop(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	assert.NoError(t, store.Sync(context.Background()))
}

func TestStore_Sync_CallsSyncFunc(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	store := syncingStore(t, func() error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, store.Sync(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestStore_Sync_CanceledContext(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	store := syncingStore(t, func() error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Sync(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load(), "sync must not run with a canceled context")
}

func TestStore_Sync_BreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	errPrimary := errors.New("primary unreachable")
	var calls atomic.Int32
	store := syncingStore(t, func() error {
		calls.Add(1)
		return errPrimary
	})
	ctx := context.Background()

	// MaxFailures is 2.
	for range 2 {
		err := store.Sync(ctx)
		require.ErrorIs(t, err, errPrimary)
		assert.NotErrorIs(t, err, domain.ErrUnavailable)
	}

	err := store.Sync(ctx)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the primary")

	health := store.HealthCheck(ctx)
	require.Error(t, health)
	assert.Contains(t, health.Error(), "open")
}

func TestStore_HealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("local store healthy", func(t *testing.T) {
		t.Parallel()
		store := openTestStore(t)
		assert.NoError(t, store.HealthCheck(context.Background()))
		assert.Equal(t, "database", store.Name())
	})

	t.Run("replica with closed breaker healthy", func(t *testing.T) {
		t.Parallel()
		store := syncingStore(t, func() error { return nil })
		assert.NoError(t, store.HealthCheck(context.Background()))
	})

	t.Run("closed handle unhealthy", func(t *testing.T) {
		t.Parallel()
		store, err := Open(context.Background(), localConfig(t), nil, nil)
		require.NoError(t, err)
		require.NoError(t, store.Shutdown())

		err = store.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping failed")
	})
}

func TestStore_Shutdown_ClosesConnector(t *testing.T) {
	t.Parallel()

	store := syncingStore(t, nil)
	var closed bool
	store.closeFn = func() error {
		closed = true
		return nil
	}

	require.NoError(t, store.Shutdown())
	assert.True(t, closed)
}
