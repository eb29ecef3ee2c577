package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
	"github.com/jsamuelsen11/libsql-todos/mocks"
)

func newTodoHandler(t *testing.T) (*handlers.TodoHandler, *mocks.MockTodoService) {
	t.Helper()
	svc := mocks.NewMockTodoService(t)
	return handlers.NewTodoHandler(svc), svc
}

// --- ListTodos ---

func TestListTodos_Success(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().ListTodos(mock.Anything).Return([]todo.Todo{todo.New("buy milk"), todo.New("")}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	h.ListTodos(rec, req)

	requireStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	assertGolden(t, "list_todos", rec)
}

func TestListTodos_Empty(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().ListTodos(mock.Anything).Return([]todo.Todo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	h.ListTodos(rec, req)

	requireStatus(t, rec, http.StatusOK)
	assertGolden(t, "list_todos_empty", rec)
}

func TestListTodos_StoreError(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().ListTodos(mock.Anything).Return(nil, errors.New("listing todos: disk I/O error"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	h.ListTodos(rec, req)

	requireStatus(t, rec, http.StatusInternalServerError)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	assertGolden(t, "list_todos_store_error", rec)
}

// --- CreateTodo ---

func TestCreateTodo_Success(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().CreateTodo(mock.Anything, todo.New("buy milk")).Return(todo.New("buy milk"), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", jsonBody(`{"task":"buy milk"}`))
	h.CreateTodo(rec, req)

	requireStatus(t, rec, http.StatusOK)
	assertGolden(t, "create_todo", rec)
}

func TestCreateTodo_EmptyTask(t *testing.T) {
	t.Parallel()
	h, svc := newTodoHandler(t)

	svc.EXPECT().CreateTodo(mock.Anything, todo.New("")).Return(todo.New(""), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", jsonBody(`{"task":""}`))
	h.CreateTodo(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[map[string]string](t, rec)
	if got, ok := resp["task"]; !ok || got != "" {
		t.Errorf("task = %q (present %v), want empty string", got, ok)
	}
}

func TestCreateTodo_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		golden string
	}{
		{name: "missing task", body: `{}`, golden: "create_todo_missing_task"},
		{name: "null task", body: `{"task":null}`, golden: "create_todo_missing_task"},
		{name: "non-string task", body: `{"task":42}`, golden: "create_todo_invalid_json"},
		{name: "malformed JSON", body: `{"task":`, golden: "create_todo_invalid_json"},
		{name: "empty body", body: ``, golden: "create_todo_invalid_json"},
		{name: "oversized body", body: `{"task":"` + strings.Repeat("a", 1<<20) + `"}`, golden: "create_todo_invalid_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// The mock fails the test if the service is reached.
			h, _ := newTodoHandler(t)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/todos", jsonBody(tt.body))
			h.CreateTodo(rec, req)

			requireStatus(t, rec, http.StatusBadRequest)
			assertGolden(t, tt.golden, rec)
		})
	}
}

func TestCreateTodo_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insert failure", errors.New("inserting todo: database is locked"), http.StatusInternalServerError},
		{"sync failure", errors.New("syncing replica: connection reset"), http.StatusInternalServerError},
		{"primary unavailable", fmt.Errorf("syncing replica: %w", domain.ErrUnavailable), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newTodoHandler(t)

			svc.EXPECT().CreateTodo(mock.Anything, mock.Anything).Return(todo.Todo{}, tt.err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/todos", jsonBody(`{"task":"x"}`))
			h.CreateTodo(rec, req)

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}
