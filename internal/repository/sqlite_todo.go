package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/daylist/internal/domain"
)

// todoColumns is the canonical SELECT column list for todos.
const todoColumns = `id, title, description, completed, created_at, completed_at`

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
type SQLiteTodoRepo struct {
	db *sql.DB
}

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(db *sql.DB) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	query := `INSERT INTO todos (id, title, description, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		boolToInt(t.Completed),
		t.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTodo(row)
}

// List returns all todos ordered by created_at descending.
func (r *SQLiteTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()
	return r.scanTodos(rows)
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	query := `UPDATE todos SET title = ?, description = ?, completed = ?, completed_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		boolToInt(t.Completed),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM todos WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanTodo scans a single todo from a *sql.Row.
func (r *SQLiteTodoRepo) scanTodo(row *sql.Row) (*domain.Todo, error) {
	var t domain.Todo
	var completedInt int
	var createdAtStr string
	var completedAtStr sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Description, &completedInt, &createdAtStr, &completedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("todo: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}

	return r.populateTodo(&t, completedInt, createdAtStr, completedAtStr)
}

// scanTodos scans multiple todos from *sql.Rows.
func (r *SQLiteTodoRepo) scanTodos(rows *sql.Rows) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	for rows.Next() {
		var t domain.Todo
		var completedInt int
		var createdAtStr string
		var completedAtStr sql.NullString

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &completedInt, &createdAtStr, &completedAtStr); err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}

		todo, err := r.populateTodo(&t, completedInt, createdAtStr, completedAtStr)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

// populateTodo fills in parsed fields on a Todo after scanning raw values.
// A stored completed_at that fails to parse comes back as nil, matching
// the archival policy of excluding such records from date folders.
func (r *SQLiteTodoRepo) populateTodo(t *domain.Todo, completedInt int, createdAtStr string, completedAtStr sql.NullString) (*domain.Todo, error) {
	t.Completed = intToBool(completedInt)
	t.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}

	return t, nil
}
