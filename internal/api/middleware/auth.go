package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/catconnect/cat-listing-api/internal/api/handler"
	"github.com/catconnect/cat-listing-api/internal/api/metrics"
	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

// TokenVerifier resolves the caller from the Authorization header. The
// header may hold the raw ID token or "Bearer <token>".
type TokenVerifier struct {
	auth ports.AuthService
}

func NewTokenVerifier(auth ports.AuthService) *TokenVerifier {
	return &TokenVerifier{auth: auth}
}

// Authenticate returns a 401 *echo.HTTPError for a missing or rejected
// credential. The rejection reason is never exposed.
func (v *TokenVerifier) Authenticate(c echo.Context) (handler.Identity, error) {
	token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

	claims, err := v.auth.Authenticate(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrMissingToken) {
			metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
			return handler.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrMissingToken.Error())
		}
		metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
		return handler.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
	}

	return handler.Identity{UID: claims.UID, Email: claims.Email}, nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
