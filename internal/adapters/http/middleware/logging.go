package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
)

// quietPrefixes are paths polled by probes and scrapers.
var quietPrefixes = []string{"/-/"}

// Logging returns middleware that logs one line per request when it
// completes. The request logger carries the request and correlation ids
// and is stored in the context, so handlers and services log through it
// with logging.FromContext.
//
// Route parameters such as entity and quotationId are logged as attributes.
// Layout saves can carry embedded images, so the request body size is
// logged for writes.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqLogger := requestLogger(logger, ctx)
		c.Request = c.Request.WithContext(logging.WithContext(ctx, reqLogger))

		if quiet(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, slog.String("query", q))
		}

		if c.Request.Method != http.MethodGet && c.Request.ContentLength > 0 {
			attrs = append(attrs, slog.Int64("request_bytes", c.Request.ContentLength))
		}

		for _, p := range c.Params {
			attrs = append(attrs, slog.String(p.Key, p.Value))
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		reqLogger.LogAttrs(c.Request.Context(), levelFor(status), "request completed", attrs...)
	}
}

// requestLogger adds the ids found in ctx to logger.
func requestLogger(logger *slog.Logger, ctx context.Context) *slog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(slog.String("request_id", id))
	}

	if id := CorrelationIDFromContext(ctx); id != "" {
		logger = logger.With(slog.String("correlation_id", id))
	}

	return logger
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func quiet(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
