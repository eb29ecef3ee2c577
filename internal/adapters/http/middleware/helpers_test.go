package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/libsql-todos/mocks"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// todoRoutes mounts the real todos handler over a mocked service behind mws.
func todoRoutes(t *testing.T, mws ...func(http.Handler) http.Handler) (http.Handler, *mocks.MockTodoService) {
	t.Helper()

	svc := mocks.NewMockTodoService(t)
	h := handlers.NewTodoHandler(svc)

	r := chi.NewRouter()
	r.Use(mws...)
	r.Get("/todos", h.ListTodos)
	r.Post("/todos", h.CreateTodo)
	return r, svc
}
