package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mini-project-manager/tracker/docs"
	"github.com/mini-project-manager/tracker/internal/api/handler"
	"github.com/mini-project-manager/tracker/internal/api/middleware"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer needs. They are built
// once in cmd/server and passed in explicitly.
type Dependencies struct {
	Auth     ports.AuthService
	Projects ports.ProjectService
	Tasks    ports.TaskService
	Tokens   ports.TokenService
	// Readiness lists the dependency checks of /health/ready.
	Readiness map[string]handler.PingFunc
	Log       zerolog.Logger
	// Metrics mounts /metrics and the request metrics middleware.
	Metrics bool
	// Swagger mounts /swagger/*.
	Swagger bool
	// Handlers read date-only due dates in this timezone.
	Location *time.Location
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, handler.HeaderIdempotencyKey},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(requestLogger(deps.Log))
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("tracker"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	if deps.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness)

	api := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Resource routes (Auth Gate first, ownership in the services) ---
	gate := middleware.Auth(deps.Tokens, deps.Log)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	taskHandler := handler.NewTaskHandler(deps.Tasks, deps.Location)

	projects := api.Group("/projects", gate)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.GET("/:id/tasks", taskHandler.ListByProject)

	tasks := api.Group("/tasks", gate)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.GET("/:id/history", taskHandler.History)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
