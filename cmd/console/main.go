package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/formdesk/console"
	"github.com/formdesk/console/handlers"
	"github.com/formdesk/console/internal/config"
	"github.com/formdesk/console/middlewares"
	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/cookie"
	"github.com/formdesk/console/pkg/doctype"
	"github.com/formdesk/console/pkg/forms"
	"github.com/formdesk/console/pkg/logger"
	"github.com/formdesk/console/pkg/redis"
	"github.com/formdesk/console/pkg/state"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONSOLE_CONFIG"))
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(
		logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Component: "console"},
		logger.SentryConfig{DSN: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment},
		middlewares.RequestIDExtractor(),
	)

	cookies := cookie.New(cookie.WithSecret(cfg.State.CookieSecret))

	api := apiclient.New(
		apiclient.WithBaseURL(cfg.APIURL),
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(log),
	)
	loader := forms.NewLoader(api,
		forms.WithPolicy(forms.ParsePolicy(cfg.FormErrorPolicy)),
		forms.WithLogger(log),
	)

	checks := []console.HealthOption{
		console.WithReadinessCheck("api", apiclient.Healthcheck(api)),
	}
	runOpts := []console.RunOption{
		console.Logger(log),
		console.ShutdownTimeout(cfg.ShutdownTimeout),
		console.ShutdownHook(logger.FlushSentry(2 * time.Second)),
	}

	var backend middlewares.StateBackend
	switch cfg.State.Backend {
	case config.BackendRedis:
		client, err := redis.Open(ctx, cfg.State.RedisURL, redis.WithLogger(log))
		if err != nil {
			return err
		}
		checks = append(checks, console.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, console.ShutdownHook(redis.Shutdown(client)))
		backend = middlewares.RedisState(state.NewRedisBackend(client, state.WithTTL(cfg.State.TTL)))
	case config.BackendNone:
		backend = middlewares.NoState()
	default:
		backend = middlewares.CookieState(state.WithCookieMaxAge(cfg.State.TTL))
	}

	var stateOpts []state.Option
	if cfg.State.Strict {
		stateOpts = append(stateOpts, state.WithStrictHydration())
	}

	app := console.New(
		console.WithLogger(log),
		console.WithCookieManager(cookies),
		console.WithErrorHandler(handlers.ErrorHandler),
		console.WithNotFoundHandler(handlers.NotFound),
		console.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		console.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.State(backend, stateOpts...),
		),
		console.WithHealthChecks(checks...),
		console.WithHandlers(
			handlers.NewFormHandler(loader),
			handlers.NewDocTypeHandler(doctype.NewService(api)),
			handlers.NewStateHandler(),
		),
	)

	log.Info("console configured",
		slog.String("api_url", api.BaseURL()),
		slog.String("state_backend", cfg.State.Backend),
		slog.String("form_error_policy", loader.Policy().String()),
	)
	return app.Run(cfg.Address, runOpts...)
}
