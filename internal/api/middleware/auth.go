package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/api/metrics"
	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

// Auth authenticates the request from its Authorization header and stores the
// token subject under UserIDKey. It never authorizes resource access.
// Failures return domain authentication errors, which the HTTP error handler
// renders as 401.
func Auth(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := tokens.ExtractFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthGateRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingCredentials
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.AuthGateRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Path()).Msg("token rejected")
				return err
			}

			c.Set(UserIDKey, claims.SubjectID)
			return next(c)
		}
	}
}
