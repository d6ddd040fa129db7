package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

func render(t *testing.T, method string, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/projects/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if method != http.MethodHead {
		if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
			t.Fatalf("invalid json: %v", jerr)
		}
	}
	return rec.Code, resp
}

func TestHTTPErrorHandler_MapsKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.Invalid("title", "is required"), http.StatusBadRequest, "title is required"},
		{"missing token", domain.ErrMissingCredentials, http.StatusUnauthorized, "not authorized, token missing or invalid"},
		{"bad token", domain.ErrTokenInvalid, http.StatusUnauthorized, "not authorized, token missing or invalid"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"project forbidden", domain.ErrProjectForbidden, http.StatusForbidden, "not authorized to access this project"},
		{"task forbidden", domain.ErrTaskForbidden, http.StatusForbidden, "not authorized to access this task"},
		{"project missing", domain.ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{"task missing", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, "user already exists"},
		{"project busy", domain.ErrProjectHasTasks, http.StatusConflict, "project still has tasks, delete them first"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed, "method not allowed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := render(t, http.MethodGet, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if resp.Success || resp.Message != tc.msg {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedKindsStillMatch(t *testing.T) {
	code, _ := render(t, http.MethodGet, fmt.Errorf("update task: %w", domain.ErrTaskForbidden))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestHTTPErrorHandler_HidesInternalErrors(t *testing.T) {
	for _, err := range []error{
		domain.Processing("insert project", errors.New("mongo: connection reset by 10.0.0.3")),
		domain.ErrCredentialOperation,
		errors.New("unexpected"),
	} {
		code, resp := render(t, http.MethodGet, err)
		if code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", code)
		}
		if resp.Message != "internal server error" {
			t.Fatalf("internal detail leaked: %q", resp.Message)
		}
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	code, _ := render(t, http.MethodHead, domain.ErrProjectNotFound)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
