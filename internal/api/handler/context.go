package handler

import (
	"github.com/labstack/echo/v4"
)

// Identity is the caller resolved by the token gate.
type Identity struct {
	UID   string
	Email string
}

// AuthedFunc is a handler that needs the authenticated caller.
type AuthedFunc func(c echo.Context, id Identity) error

// Authenticator resolves the caller of a request or returns the error to
// render (typically a 401 *echo.HTTPError).
type Authenticator interface {
	Authenticate(c echo.Context) (Identity, error)
}

// Authed gates h behind auth and hands it the resolved identity as an
// argument. h is never invoked for a rejected request.
func Authed(auth Authenticator, h AuthedFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := auth.Authenticate(c)
		if err != nil {
			return err
		}
		return h(c, id)
	}
}
