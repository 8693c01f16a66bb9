package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
)

// PanicHook observes a recovered panic, e.g. to count it.
type PanicHook func(c *gin.Context, recovered any, stack []byte)

// Recovery returns middleware that turns a panic into a 500 error envelope
// carrying the trace id. It is installed first so it also covers the other
// middleware. Hooks run after the panic is logged.
func Recovery(logger *slog.Logger, hooks ...PanicHook) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := debug.Stack()
			ctx := c.Request.Context()
			traceID := traceIDFrom(ctx)

			requestLogger(logger, ctx).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(stack)),
				slog.String("method", c.Request.Method),
				slog.String("route", c.FullPath()),
				slog.String("trace_id", traceID),
			)

			for _, hook := range hooks {
				hook(c, r, stack)
			}

			if c.Writer.Written() {
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
		}()

		c.Next()
	}
}

func traceIDFrom(ctx context.Context) string {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
