package domain

import (
	"errors"
	"fmt"
)

// Error kinds. The HTTP adapter picks a status from whichever one an error
// wraps; anything else is treated as an internal failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
)

// Inputs and reasons reported by InputError for POST /todos.
const (
	InputBody = "body"
	InputTask = "task"

	ReasonMissing   = "is required"
	ReasonMalformed = "is not a JSON object with a string task"
)

// InputError explains why a create request could not become a todo. Input is
// InputBody when the payload did not decode and InputTask when the decoded
// object had no task.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidInput, e.Input, e.Reason)
}

// Is makes every InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
