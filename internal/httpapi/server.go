// Package httpapi exposes the todo list and the report relay over HTTP.
package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexanderramin/daylist/internal/gate"
	"github.com/alexanderramin/daylist/internal/llm"
	"github.com/alexanderramin/daylist/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed web
var webFS embed.FS

// Server wires the HTTP surface: todo CRUD, access verification, the
// report streaming relay, and the embedded single-page UI.
type Server struct {
	todos      service.TodoService
	gate       *gate.Gate
	completion llm.CompletionClient
	echo       *echo.Echo
	now        func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the server's time source. Used by tests to pin
// the report aggregation window.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer builds the echo application. completion may be nil, in
// which case the report endpoint reports the feature as unavailable.
func NewServer(todos service.TodoService, g *gate.Gate, completion llm.CompletionClient, opts ...Option) *Server {
	s := &Server{
		todos:      todos,
		gate:       g,
		completion: completion,
		echo:       echo.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/api/todos", s.listTodos)
	e.GET("/api/report", s.streamReport)
	e.POST("/api/access/verify", s.verifyAccess)

	// Mutations sit behind the access gate.
	gated := e.Group("/api/todos", s.gate.Middleware())
	gated.POST("", s.createTodo)
	gated.PATCH("/:id/completed", s.setCompleted)
	gated.DELETE("/:id", s.deleteTodo)

	web, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	e.GET("/", echo.WrapHandler(http.FileServer(http.FS(web))))
}

// Start runs the server on addr, blocking until it stops.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the underlying http.Handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
