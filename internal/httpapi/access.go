package httpapi

import (
	"net/http"

	"github.com/alexanderramin/daylist/internal/gate"
	"github.com/labstack/echo/v4"
)

type verifyAccessRequest struct {
	Code string `json:"code"`
}

// verifyAccess lets the browser check a code before storing it, so the
// mutation path never blocks on an interactive prompt.
func (s *Server) verifyAccess(c echo.Context) error {
	var req verifyAccessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.gate.Check(req.Code); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": gate.ErrAccessDenied.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
