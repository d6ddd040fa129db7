// @title                       Tracker API
// @version                     1.0
// @description                 Multi-tenant project and task tracker.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/api"
	"github.com/mini-project-manager/tracker/internal/api/handler"
	"github.com/mini-project-manager/tracker/internal/core/ports"
	"github.com/mini-project-manager/tracker/internal/core/service"
	"github.com/mini-project-manager/tracker/internal/infrastructure/config"
	"github.com/mini-project-manager/tracker/internal/infrastructure/db/memory"
	mongostore "github.com/mini-project-manager/tracker/internal/infrastructure/db/mongo"
	redisstore "github.com/mini-project-manager/tracker/internal/infrastructure/db/redis"
	"github.com/mini-project-manager/tracker/internal/infrastructure/queue"
	"github.com/mini-project-manager/tracker/internal/infrastructure/security"
	"github.com/mini-project-manager/tracker/pkg/logger"
)

// stores groups the repositories of the selected driver.
type stores struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	events   ports.TaskEventRepository
	idem     ports.IdempotencyStore
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "tracker",
	})

	var st stores
	var closers []func(context.Context) error
	checks := map[string]handler.PingFunc{}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("connect mongodb")
		}
		closers = append(closers, client.Disconnect)
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

		users := mongostore.NewUserRepository(db)
		projects := mongostore.NewProjectRepository(db)
		tasks := mongostore.NewTaskRepository(db)
		events := mongostore.NewTaskEventRepository(db)
		if err := mongostore.EnsureIndexes(ctx, users, projects, tasks, events); err != nil {
			log.Fatal().Err(err).Msg("ensure mongodb indexes")
		}
		st = stores{users: users, projects: projects, tasks: tasks, events: events}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	case config.DriverMemory:
		mem := memory.NewStore()
		st = stores{users: mem.Users(), projects: mem.Projects(), tasks: mem.Tasks(), events: mem.Events(), idem: mem.Idempotency()}
		log.Warn().Msg("using the in-memory store, data is lost on exit")
	}

	redisCfg := redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err := redisstore.Connect(ctx, redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		closers = append(closers, func(context.Context) error { return rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		st.idem = redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else if st.idem == nil {
		log.Info().Msg("redis disabled, Idempotency-Key headers are ignored")
	}

	// --- Security ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	var tokenOpts []security.Option
	if cfg.Auth.JWTIssuer != "" {
		tokenOpts = append(tokenOpts, security.WithIssuer(cfg.Auth.JWTIssuer))
	}
	tokens := security.NewJWTService(cfg.Auth.JWTSecret, tokenOpts...)

	// --- Activity ---
	activity := service.NewActivityService(st.events, logger.Component("activity"))
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activity, logger.Component("dispatcher"))
	dispatcher.Start()

	// --- Services ---
	loc := cfg.Location()
	router := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(st.users, hasher, tokens, logger.Component("auth")),
		Projects: service.NewProjectService(st.projects, st.tasks, st.idem, logger.Component("projects")),
		Tasks: service.NewTaskService(service.TaskServiceDeps{
			Projects:    st.projects,
			Tasks:       st.tasks,
			Events:      st.events,
			Idempotency: st.idem,
			Activity:    dispatcher,
			Location:    loc,
		}, logger.Component("tasks")),
		Tokens:    tokens,
		Readiness: checks,
		Log:       logger.Component("http"),
		Metrics:   true,
		Swagger:   true,
		Location:  loc,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
	// Requests have drained, so no new events can be published.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity dispatcher shutdown")
	}
	closeAll(shutdownCtx, log, closers)
	log.Info().Msg("bye")
}

func closeAll(ctx context.Context, log zerolog.Logger, closers []func(context.Context) error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("close dependency")
		}
	}
}
