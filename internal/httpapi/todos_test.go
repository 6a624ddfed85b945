package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/gate"
	"github.com/alexanderramin/daylist/internal/repository"
	"github.com/alexanderramin/daylist/internal/service"
	"github.com/alexanderramin/daylist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCode = "s3cret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo := repository.NewSQLiteTodoRepo(testutil.NewTestDB(t))
	svc := service.NewTodoService(repo)
	return NewServer(svc, gate.New(testCode), nil)
}

func doJSON(t *testing.T, s *Server, method, path, body string, code string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if code != "" {
		req.Header.Set(gate.HeaderName, code)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_CreateAndList(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/todos",
		`{"title":"Walk dog","description":"around the block"}`, testCode)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Walk dog", created.Title)
	assert.False(t, created.Completed)

	rec = doJSON(t, s, http.MethodGet, "/api/todos", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.TodoView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Open, 1)
	assert.Equal(t, created.ID, view.Open[0].ID)
	assert.Empty(t, view.DoneToday)
	assert.Empty(t, view.Folders)
}

func TestServer_DescriptionsRenderedAsHTML(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/todos",
		`{"title":"<b>Groceries</b>","description":"**milk** and <script>alert(1)</script> eggs"}`, testCode)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created todoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Contains(t, created.DescriptionHTML, "<strong>milk</strong>")
	assert.NotContains(t, created.DescriptionHTML, "<script>")
	// The title is never rendered, only the description.
	assert.Equal(t, "<b>Groceries</b>", created.Title)

	rec = doJSON(t, s, http.MethodGet, "/api/todos", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view viewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Open, 1)
	assert.Contains(t, view.Open[0].DescriptionHTML, "<strong>milk</strong>")
}

func TestServer_Create_EmptyTitle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/todos", `{"title":"   "}`, testCode)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_MutationsRequireAccessCode(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/todos", `{"title":"nope"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/todos", `{"title":"nope"}`, "wrong-code")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Reads stay open.
	rec = doJSON(t, s, http.MethodGet, "/api/todos", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Nothing was created.
	var view service.TodoView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Open)
}

func TestServer_SetCompletedRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/todos", `{"title":"Task"}`, testCode)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, s, http.MethodPatch, "/api/todos/"+created.ID+"/completed",
		`{"completed":true}`, testCode)
	require.Equal(t, http.StatusOK, rec.Code)
	var done domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *done.CompletedAt, time.Minute)

	rec = doJSON(t, s, http.MethodPatch, "/api/todos/"+created.ID+"/completed",
		`{"completed":false}`, testCode)
	require.Equal(t, http.StatusOK, rec.Code)
	var reverted domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reverted))
	assert.False(t, reverted.Completed)
	assert.Nil(t, reverted.CompletedAt)
}

func TestServer_SetCompleted_NotFound(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPatch, "/api/todos/missing/completed",
		`{"completed":true}`, testCode)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Delete(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/todos", `{"title":"Ephemeral"}`, testCode)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, s, http.MethodDelete, "/api/todos/"+created.ID, "", testCode)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/todos/"+created.ID, "", testCode)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_VerifyAccess(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/access/verify", `{"code":"s3cret"}`, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/access/verify", `{"code":"wrong"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
