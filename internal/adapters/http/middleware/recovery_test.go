package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
)

func TestRecovery_ListPassesThrough(t *testing.T) {
	t.Parallel()

	routes, svc := todoRoutes(t, middleware.Recovery(discardLogger()))
	svc.EXPECT().ListTodos(mock.Anything).Return([]todo.Todo{todo.New("feed cat")}, nil)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"task":"feed cat"}]`, rec.Body.String())
}

func TestRecovery_PanickingServiceBecomesProblem(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	routes, svc := todoRoutes(t, middleware.Recovery(testLogger(&logs)))
	svc.EXPECT().CreateTodo(mock.Anything, todo.New("walk dog")).
		RunAndReturn(func(context.Context, todo.Todo) (todo.Todo, error) {
			panic("sql: statement is closed")
		})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"task":"walk dog"}`)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem dto.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	assert.Equal(t, "/todos", problem.Instance)
	assert.NotContains(t, problem.Detail, "statement is closed")

	out := logs.String()
	assert.Contains(t, out, "handler panicked")
	assert.Contains(t, out, "sql: statement is closed")
	assert.Contains(t, out, "route=/todos")
	assert.Contains(t, out, "response_started=false")
	assert.Contains(t, out, "stack=")
}

func TestRecovery_PanicAfterBodyStartedOnlyLogs(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	handler := middleware.Recovery(testLogger(&logs))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"task":"a"},`))
		panic("rows.Next: database is locked")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"task":"a"},`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, logs.String(), "response_started=true")
}

func TestRecovery_AbortHandlerIsReraised(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	handler := middleware.Recovery(testLogger(&logs))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/todos", http.NoBody))
	})
	assert.Empty(t, logs.String())
}
