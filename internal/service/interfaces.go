package service

import (
	"context"

	"github.com/alexanderramin/daylist/internal/archive"
	"github.com/alexanderramin/daylist/internal/domain"
)

// TodoView is the partitioned list the UI renders: open items, today's
// completions inline, and older completions folded into date folders.
type TodoView struct {
	Open      []*domain.Todo   `json:"open"`
	DoneToday []*domain.Todo   `json:"done_today"`
	Folders   []archive.Folder `json:"folders"`
}

type TodoService interface {
	// List fetches every todo and partitions it into a TodoView.
	List(ctx context.Context) (*TodoView, error)

	// Create stores a new open todo. The trimmed title must be non-empty.
	Create(ctx context.Context, title, description string) (*domain.Todo, error)

	// SetCompleted toggles completion, setting completed_at on the
	// false→true transition and clearing it on true→false.
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Todo, error)

	// Delete removes a todo permanently.
	Delete(ctx context.Context, id string) error
}
