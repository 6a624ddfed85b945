package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/daylist/internal/archive"
	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/repository"
	"github.com/google/uuid"
)

type todoService struct {
	todos  repository.TodoRepo
	now    func() time.Time
	onDrop archive.DropHandler
}

// Option configures a todoService.
type Option func(*todoService)

// WithClock overrides the service clock. Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *todoService) { s.now = now }
}

// WithDropHandler sets the hook invoked when a completed todo is
// excluded from archival grouping for lack of a completion timestamp.
func WithDropHandler(h archive.DropHandler) Option {
	return func(s *todoService) { s.onDrop = h }
}

func NewTodoService(todos repository.TodoRepo, opts ...Option) TodoService {
	s := &todoService{
		todos: todos,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *todoService) List(ctx context.Context) (*TodoView, error) {
	todos, err := s.todos.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	view := &TodoView{
		Open:      []*domain.Todo{},
		DoneToday: []*domain.Todo{},
	}
	var older []*domain.Todo
	for _, t := range todos {
		switch {
		case !t.Completed:
			view.Open = append(view.Open, t)
		case t.CompletedOn(now):
			view.DoneToday = append(view.DoneToday, t)
		default:
			older = append(older, t)
		}
	}
	view.Folders = archive.GroupByDate(older, now, true, s.onDrop)

	return view, nil
}

func (s *todoService) Create(ctx context.Context, title, description string) (*domain.Todo, error) {
	t := &domain.Todo{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Completed:   false,
		CreatedAt:   s.now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Todo, error) {
	t, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if completed {
		t.MarkCompleted(s.now())
	} else {
		t.MarkIncomplete()
	}
	if err := s.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	return s.todos.Delete(ctx, id)
}
