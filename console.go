package console

import (
	"context"
	"log/slog"
	"time"

	"github.com/formdesk/console/internal"
	"github.com/formdesk/console/pkg/cookie"
)

type (
	// App orchestrates routing, middleware and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler renders handler errors.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health endpoints.
	HealthOption = internal.HealthOption

	// Component is a renderable template, compatible with templ.Component.
	Component = internal.Component

	// HTTPError carries a status and a client-facing message.
	HTTPError = internal.HTTPError
)

// New creates an application.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

func WithHandlers(h ...Handler) Option { return internal.WithHandlers(h...) }

func WithErrorHandler(h ErrorHandler) Option { return internal.WithErrorHandler(h) }

func WithNotFoundHandler(h HandlerFunc) Option { return internal.WithNotFoundHandler(h) }

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

func WithLogger(l *slog.Logger) Option { return internal.WithLogger(l) }

func WithCookieManager(m *cookie.Manager) Option { return internal.WithCookieManager(m) }

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option { return internal.WithHealthChecks(opts...) }

func WithLivenessPath(path string) HealthOption { return internal.WithLivenessPath(path) }

func WithReadinessPath(path string) HealthOption { return internal.WithReadinessPath(path) }

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

func Logger(l *slog.Logger) RunOption { return internal.Logger(l) }

func ShutdownTimeout(d time.Duration) RunOption { return internal.ShutdownTimeout(d) }

func StartupHook(fn func(context.Context) error) RunOption { return internal.StartupHook(fn) }

func ShutdownHook(fn func(context.Context) error) RunOption { return internal.ShutdownHook(fn) }

func WithContext(ctx context.Context) RunOption { return internal.WithContext(ctx) }

func OnReady(fn func(addr string)) RunOption { return internal.OnReady(fn) }

// Errors

func NewHTTPError(code int, message string) *HTTPError { return internal.NewHTTPError(code, message) }

func ErrBadRequest(message string) *HTTPError { return internal.ErrBadRequest(message) }

func ErrNotFound(message string) *HTTPError { return internal.ErrNotFound(message) }

func ErrBadGateway(message string) *HTTPError { return internal.ErrBadGateway(message) }

func ErrInternal(message string) *HTTPError { return internal.ErrInternal(message) }

// AsHTTPError converts any error into an HTTPError, defaulting to 500.
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

// DefaultErrorHandler writes JSON or plain text errors.
func DefaultErrorHandler(c Context, err error) error { return internal.DefaultErrorHandler(c, err) }

// WantsJSON reports whether the request prefers a JSON response.
var WantsJSON = internal.WantsJSON
