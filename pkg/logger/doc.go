// Package logger builds the console's slog loggers.
//
// Every logger is wrapped in a decorator that pulls request-scoped attributes
// (such as request_id) out of the context on each call. When a Sentry DSN is
// configured, warnings and errors are also forwarded to Sentry.
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"},
//	    middlewares.RequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "form loaded", slog.String("form_id", id))
package logger
