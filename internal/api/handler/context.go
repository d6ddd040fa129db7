package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mini-project-manager/tracker/internal/api/middleware"
	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// ctxUserID returns the user id stored by the Auth middleware. A missing id
// means the route was mounted without the middleware and is rejected as
// unauthenticated.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", domain.ErrMissingCredentials
	}
	return id, nil
}

// bind decodes the request body and runs struct validation.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("", "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
