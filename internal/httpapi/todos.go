package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/daylist/internal/domain"
	"github.com/alexanderramin/daylist/internal/repository"
	"github.com/labstack/echo/v4"
)

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type setCompletedRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) listTodos(c echo.Context) error {
	view, err := s.todos.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, renderView(view))
}

func (s *Server) createTodo(c echo.Context) error {
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	todo, err := s.todos.Create(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, renderTodo(todo))
}

func (s *Server) setCompleted(c echo.Context) error {
	var req setCompletedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	todo, err := s.todos.SetCompleted(c.Request().Context(), c.Param("id"), req.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, renderTodo(todo))
}

func (s *Server) deleteTodo(c echo.Context) error {
	if err := s.todos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
