package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/drivehq/drive-api/internal/api/metrics"
	"github.com/drivehq/drive-api/internal/core/domain"
	"github.com/drivehq/drive-api/internal/pkg/token"
)

// IdentityKey is the echo context key the authenticated identity is stored
// under.
const IdentityKey = "identity"

// Auth validates the bearer token on every protected request and injects
// the authenticated identity into the context. Verification tries the
// first-party secret first and falls back to the provider secret; expired
// and tampered tokens are surfaced uniformly as "invalid or expired".
func Auth(verifier *token.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				if errors.Is(err, token.ErrNoSecret) {
					metrics.AuthRejectionsTotal.WithLabelValues("no_secret").Inc()
					return echo.NewHTTPError(http.StatusInternalServerError, "server configuration error")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
			}

			id := token.Subject(claims)
			email, _ := claims["email"].(string)
			if id == "" || email == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_user_info").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token: missing user information")
			}

			name, _ := claims["name"].(string)
			if name == "" {
				name = email
			}

			c.Set(IdentityKey, domain.Identity{
				ID:    id,
				Email: email,
				Name:  name,
				Image: token.Picture(claims),
			})

			return next(c)
		}
	}
}
