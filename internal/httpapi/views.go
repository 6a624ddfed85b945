package httpapi

import (
	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/markup"
	"github.com/alexanderramin/daylist/internal/service"
)

// todoResponse is a todo plus its description rendered to HTML, so the
// page can show formatted descriptions without shipping a markdown
// parser to the browser. Titles stay plain text.
type todoResponse struct {
	domain.Todo
	DescriptionHTML string `json:"description_html"`
}

type folderResponse struct {
	Date  string         `json:"date"`
	Todos []todoResponse `json:"todos"`
}

type viewResponse struct {
	Open      []todoResponse   `json:"open"`
	DoneToday []todoResponse   `json:"done_today"`
	Folders   []folderResponse `json:"folders"`
}

func renderTodo(t *domain.Todo) todoResponse {
	return todoResponse{Todo: *t, DescriptionHTML: markup.Render(t.Description)}
}

func renderTodos(todos []*domain.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, renderTodo(t))
	}
	return out
}

func renderView(v *service.TodoView) viewResponse {
	folders := make([]folderResponse, 0, len(v.Folders))
	for _, f := range v.Folders {
		folders = append(folders, folderResponse{Date: f.Date, Todos: renderTodos(f.Todos)})
	}
	return viewResponse{
		Open:      renderTodos(v.Open),
		DoneToday: renderTodos(v.DoneToday),
		Folders:   folders,
	}
}
