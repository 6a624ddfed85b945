package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyTitle indicates a todo was submitted without a usable title.
var ErrEmptyTitle = errors.New("todo title must not be empty")

// Todo is a single task record. CompletedAt is non-nil exactly when
// Completed is true; MarkCompleted and MarkIncomplete maintain that.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Validate checks the fields a caller controls. The title must be
// non-empty after trimming whitespace.
func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// MarkCompleted transitions the todo to completed at the given time.
func (t *Todo) MarkCompleted(at time.Time) {
	t.Completed = true
	t.CompletedAt = &at
}

// MarkIncomplete reverts the todo to the open state and clears the
// completion timestamp.
func (t *Todo) MarkIncomplete() {
	t.Completed = false
	t.CompletedAt = nil
}

// CompletedOn reports whether the todo was completed on the same
// calendar day as day, in day's location. False for open todos and
// todos missing a completion timestamp.
func (t *Todo) CompletedOn(day time.Time) bool {
	if t.CompletedAt == nil {
		return false
	}
	y1, m1, d1 := t.CompletedAt.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
