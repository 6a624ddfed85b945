package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/daylist/internal/domain"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
}
