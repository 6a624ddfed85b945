package testutil

import (
	"time"

	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/google/uuid"
)

// TodoOption customizes a test todo.
type TodoOption func(*domain.Todo)

// WithDescription sets the description.
func WithDescription(desc string) TodoOption {
	return func(t *domain.Todo) { t.Description = desc }
}

// WithCreatedAt sets the creation timestamp.
func WithCreatedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) { t.CreatedAt = at }
}

// WithCompletedAt marks the todo completed at the given time.
func WithCompletedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) { t.MarkCompleted(at) }
}

// NewTestTodo creates an open todo with sensible defaults.
func NewTestTodo(title string, opts ...TodoOption) *domain.Todo {
	todo := &domain.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(todo)
	}
	return todo
}
