package dto

import (
	"encoding/json"
	"io"

	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
)

// CreateTodoRequest is the POST /todos body. Task is a pointer so an absent
// or null task can be told apart from "".
type CreateTodoRequest struct {
	Task *string `json:"task"`
}

// DecodeCreateTodo reads one create request from body. Any string task is
// accepted, including "", and unknown fields are ignored. Failures are
// returned as *domain.InputError.
func DecodeCreateTodo(body io.Reader) (todo.Todo, error) {
	var req CreateTodoRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return todo.Todo{}, &domain.InputError{Input: domain.InputBody, Reason: domain.ReasonMalformed}
	}
	if req.Task == nil {
		return todo.Todo{}, &domain.InputError{Input: domain.InputTask, Reason: domain.ReasonMissing}
	}
	return todo.New(*req.Task), nil
}
