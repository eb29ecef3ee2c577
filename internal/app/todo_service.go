// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/libsql-todos/internal/domain/todo"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
	"github.com/jsamuelsen11/libsql-todos/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService over the TodoStore port. It
// sequences store calls and logs failures but holds no business rules.
// Logs go to the request-scoped logger when the context carries one.
type TodoService struct {
	store  ports.TodoStore
	logger *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger discards output.
func NewTodoService(store ports.TodoStore, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		store:  store,
		logger: logger,
	}
}

// ListTodos returns all stored todos.
func (s *TodoService) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	log := logging.FromContext(ctx, s.logger)
	log.DebugContext(ctx, "listing todos")

	todos, err := s.store.ListTodos(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "ListTodos"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return todos, nil
}

// CreateTodo inserts t and then syncs the replica. A failed insert skips the
// sync. On success the submitted todo is returned unchanged.
func (s *TodoService) CreateTodo(ctx context.Context, t todo.Todo) (todo.Todo, error) {
	log := logging.FromContext(ctx, s.logger)
	log.DebugContext(ctx, "creating todo", slog.Int("task_len", len(t.Task)))

	if err := s.store.InsertTodo(ctx, t); err != nil {
		log.ErrorContext(ctx, "failed to insert todo",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return todo.Todo{}, err
	}

	if err := s.store.Sync(ctx); err != nil {
		log.ErrorContext(ctx, "failed to sync after insert",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return todo.Todo{}, err
	}

	return t, nil
}
