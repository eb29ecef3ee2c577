package ports

import (
	"context"

	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
)

// TodoService defines the service port for todo operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// ListTodos returns every stored todo in the order the store yields them.
	// An empty store returns an empty, non-nil slice.
	ListTodos(ctx context.Context) ([]todo.Todo, error)

	// CreateTodo stores the todo and synchronizes the replica with the
	// primary. The returned todo is the one submitted, not a re-read row.
	CreateTodo(ctx context.Context, t todo.Todo) (todo.Todo, error)
}
