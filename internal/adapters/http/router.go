// Package http is the inbound HTTP adapter: the chi router for the greeting,
// health, and todos routes plus the server lifecycle around it.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/handlers"
)

// NewRouter mounts every route behind middlewares, outermost first. Unknown
// paths and unsupported methods are answered with problem bodies like any
// other error.
func NewRouter(
	todos *handlers.TodoHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteStatus(w, req, http.StatusNotFound, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteStatus(w, req, http.StatusMethodNotAllowed, req.Method+" is not supported on "+req.URL.Path)
	})

	r.Get("/", handlers.Index)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Get("/todos", todos.ListTodos)
	r.Post("/todos", todos.CreateTodo)

	return r
}
