// Package todo defines the Todo entity stored in the todos table.
package todo

// Todo is a single task. It carries no identifier, timestamp, or status;
// the task text is the whole entity.
type Todo struct {
	Task string
}

// New returns a Todo for the given task text. Any string, including the
// empty string, is a valid task.
func New(task string) Todo {
	return Todo{Task: task}
}
