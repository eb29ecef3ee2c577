package ports

import (
	"context"

	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
)

// TodoStore defines the outbound port for the todos table.
// Implemented by the database adapter; called by the application layer.
type TodoStore interface {
	// ListTodos scans the todos table without filtering or ordering.
	ListTodos(ctx context.Context) ([]todo.Todo, error)

	// InsertTodo inserts one row. It does not synchronize.
	InsertTodo(ctx context.Context, t todo.Todo) error

	// Sync reconciles the local replica with the remote primary.
	// Returns domain.ErrUnavailable when the primary is known to be down.
	Sync(ctx context.Context) error
}
