package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
	"github.com/jsamuelsen11/libsql-todos/internal/ports"
)

// TodoHandler serves the /todos collection.
type TodoHandler struct {
	svc ports.TodoService
}

// NewTodoHandler creates a TodoHandler over svc.
func NewTodoHandler(svc ports.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ListTodos handles GET /todos with a bare JSON array, [] when empty.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListTodos(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, dto.ToTodoListResponse(todos))
}

// CreateTodo handles POST /todos. A body without a string task is rejected
// before the service is called; otherwise the submitted task is echoed.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	t, err := dto.DecodeCreateTodo(http.MaxBytesReader(w, r.Body, maxCreateBodyBytes))
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	created, err := h.svc.CreateTodo(r.Context(), t)
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, dto.ToTodoResponse(created))
}
