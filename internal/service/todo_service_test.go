package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/repository"
	"github.com/alexanderramin/daylist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo records calls so tests can assert a mutation never
// reached the repository.
type countingRepo struct {
	repository.TodoRepo
	creates int
}

func (r *countingRepo) Create(ctx context.Context, t *domain.Todo) error {
	r.creates++
	return r.TodoRepo.Create(ctx, t)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestService(t *testing.T, now time.Time) (TodoService, repository.TodoRepo) {
	t.Helper()
	repo := repository.NewSQLiteTodoRepo(testutil.NewTestDB(t))
	return NewTodoService(repo, WithClock(fixedClock(now))), repo
}

func TestTodoService_Create(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "  Plan sprint  ", "outline goals")
	require.NoError(t, err)
	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "Plan sprint", todo.Title)
	assert.Equal(t, now, todo.CreatedAt)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)

	stored, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, stored.ID)
}

func TestTodoService_Create_EmptyTitleSkipsRepository(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	base := repository.NewSQLiteTodoRepo(testutil.NewTestDB(t))
	counting := &countingRepo{TodoRepo: base}
	svc := NewTodoService(counting, WithClock(fixedClock(now)))
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, title, "desc")
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	}
	assert.Zero(t, counting.creates, "validation failure must not reach the repository")

	list, err := base.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTodoService_SetCompleted_RoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "Read book", "")
	require.NoError(t, err)

	done, err := svc.SetCompleted(ctx, todo.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)

	reverted, err := svc.SetCompleted(ctx, todo.ID, false)
	require.NoError(t, err)
	assert.False(t, reverted.Completed)
	assert.Nil(t, reverted.CompletedAt)
}

func TestTodoService_SetCompleted_NotFound(t *testing.T) {
	svc, _ := newTestService(t, time.Now().UTC())
	_, err := svc.SetCompleted(context.Background(), "missing", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTodoService_List_Partitions(t *testing.T) {
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	ctx := context.Background()

	open := testutil.NewTestTodo("open", testutil.WithCreatedAt(now.Add(-time.Hour)))
	doneToday := testutil.NewTestTodo("done today",
		testutil.WithCreatedAt(now.Add(-2*time.Hour)),
		testutil.WithCompletedAt(now.Add(-time.Minute)))
	yesterday := testutil.NewTestTodo("yesterday",
		testutil.WithCreatedAt(now.AddDate(0, 0, -1)),
		testutil.WithCompletedAt(now.AddDate(0, 0, -1)))
	lastWeek := testutil.NewTestTodo("last week",
		testutil.WithCreatedAt(now.AddDate(0, 0, -6)),
		testutil.WithCompletedAt(now.AddDate(0, 0, -6)))

	for _, todo := range []*domain.Todo{open, doneToday, yesterday, lastWeek} {
		require.NoError(t, repo.Create(ctx, todo))
	}

	view, err := svc.List(ctx)
	require.NoError(t, err)

	require.Len(t, view.Open, 1)
	assert.Equal(t, "open", view.Open[0].Title)

	require.Len(t, view.DoneToday, 1)
	assert.Equal(t, "done today", view.DoneToday[0].Title)

	require.Len(t, view.Folders, 2)
	assert.Equal(t, "2026-08-29", view.Folders[0].Date)
	assert.Equal(t, "2026-08-24", view.Folders[1].Date)
}

func TestTodoService_List_ReportsDroppedTodos(t *testing.T) {
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTodoRepo(db)

	var dropped []*domain.Todo
	svc := NewTodoService(repo,
		WithClock(fixedClock(now)),
		WithDropHandler(func(t *domain.Todo) { dropped = append(dropped, t) }),
	)
	ctx := context.Background()

	// Completed row with a corrupt completion timestamp.
	_, err := db.ExecContext(ctx,
		`INSERT INTO todos (id, title, description, completed, created_at, completed_at)
		 VALUES ('bad', 'corrupt', '', 1, ?, 'garbage')`,
		now.AddDate(0, 0, -2).Format(time.RFC3339))
	require.NoError(t, err)

	view, err := svc.List(ctx)
	require.NoError(t, err)

	assert.Empty(t, view.Folders, "the corrupt row lands in no folder")
	assert.Empty(t, view.DoneToday)
	require.Len(t, dropped, 1)
	assert.Equal(t, "bad", dropped[0].ID)
}

func TestTodoService_Delete(t *testing.T) {
	svc, repo := newTestService(t, time.Now().UTC())
	ctx := context.Background()

	todo, err := svc.Create(ctx, "temp", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, todo.ID))

	_, err = repo.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
