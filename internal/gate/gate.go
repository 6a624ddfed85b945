// Package gate implements the shared access-code check on mutating
// operations. It is a soft deterrent, not a security boundary: a single
// secret shared by every client, with no identity behind it.
package gate

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderName is the request header carrying the access code.
const HeaderName = "X-Access-Code"

// ErrAccessDenied indicates the supplied code does not match the
// configured value.
var ErrAccessDenied = errors.New("access denied")

// Gate checks submitted codes against a configured expected value.
type Gate struct {
	expected string
}

// New creates a Gate. An empty expected value disables the check
// entirely (local development mode).
func New(expected string) *Gate {
	return &Gate{expected: expected}
}

// Enabled reports whether an access code is configured.
func (g *Gate) Enabled() bool {
	return g.expected != ""
}

// Check validates a submitted code. Returns ErrAccessDenied on
// mismatch; always passes when the gate is disabled.
func (g *Gate) Check(code string) error {
	if !g.Enabled() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(g.expected)) != 1 {
		return ErrAccessDenied
	}
	return nil
}

// Middleware rejects requests whose X-Access-Code header fails Check.
// Applied to mutating routes only.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.Check(c.Request().Header.Get(HeaderName)); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": ErrAccessDenied.Error()})
			}
			return next(c)
		}
	}
}
