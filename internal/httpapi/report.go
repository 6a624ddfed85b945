package httpapi

import (
	"io"
	"net/http"

	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/llm"
	"github.com/alexanderramin/daylist/internal/report"
	"github.com/alexanderramin/daylist/internal/service"
	"github.com/labstack/echo/v4"
)

// defaultReportQuery is the instruction sent upstream when the caller
// does not provide one.
const defaultReportQuery = "Generate a weekly report from the finished and pending tasks."

// streamReport relays the completion API's event stream to the caller.
// Chunks are forwarded verbatim as they arrive; nothing is buffered
// beyond the copy window. The upstream call runs under the request
// context, so a client disconnect aborts it.
func (s *Server) streamReport(c echo.Context) error {
	if s.completion == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": llm.ErrMissingToken.Error()})
	}

	ctx := c.Request().Context()

	finished := c.QueryParam("finishDatas")
	pending := c.QueryParam("todoDatas")
	if finished == "" && pending == "" {
		// No blocks supplied: aggregate from the store on the caller's behalf.
		view, err := s.todos.List(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		finished, pending = report.Aggregate(flatten(view.Open, view.DoneToday, folderTodos(view)), s.now(), report.Window)
	}

	query := c.QueryParam("query")
	if query == "" {
		query = defaultReportQuery
	}

	stream, err := s.completion.Stream(ctx, llm.CompletionRequest{
		Inputs: map[string]string{
			"finishDatas": finished,
			"todoDatas":   pending,
		},
		Query:        query,
		User:         c.QueryParam("user"),
		ResponseMode: c.QueryParam("response_mode"),
	})
	if err != nil {
		c.Logger().Errorf("report relay: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upstream request failed"})
	}
	defer stream.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	buf := make([]byte, 4096)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			if _, writeErr := resp.Write(buf[:n]); writeErr != nil {
				// Caller went away; the deferred close aborts upstream.
				return nil
			}
			resp.Flush()
		}
		if readErr != nil {
			if readErr != io.EOF {
				// Headers are out: all we can do is stop. Bytes already
				// relayed stay intact on the caller's side.
				c.Logger().Errorf("report relay: upstream read: %v", readErr)
			}
			return nil
		}
	}
}

func flatten(groups ...[]*domain.Todo) []*domain.Todo {
	var all []*domain.Todo
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func folderTodos(view *service.TodoView) []*domain.Todo {
	var all []*domain.Todo
	for _, f := range view.Folders {
		all = append(all, f.Todos...)
	}
	return all
}
