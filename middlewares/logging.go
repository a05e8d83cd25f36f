package middlewares

import (
	"log/slog"
	"time"

	"github.com/formdesk/console/internal"
)

// RequestLogger logs one line per request after the handler returns.
// Server errors log at error level, client errors at warn.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := 200
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				status = rw.Status()
			}
			if err != nil {
				status = internal.AsHTTPError(err).Code
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
