package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drivehq/drive-api/internal/api/middleware"
	"github.com/drivehq/drive-api/internal/core/domain"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware. Its presence proves the middleware ran; a protected handler
// reached without it is a wiring bug, rejected with 401 rather than trusted.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || ident.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ident, nil
}
