// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
)

// TodoResponse represents a single todo in HTTP responses.
type TodoResponse struct {
	Task string `json:"task"`
}

// ToTodoResponse converts a domain Todo to an HTTP response DTO.
func ToTodoResponse(t todo.Todo) TodoResponse {
	return TodoResponse{Task: t.Task}
}

// ToTodoListResponse converts todos to a bare JSON array. The result is never
// nil, so an empty list encodes as [] rather than null.
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i, t := range todos {
		items[i] = ToTodoResponse(t)
	}
	return items
}
