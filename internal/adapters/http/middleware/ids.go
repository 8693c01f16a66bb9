// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID identifies one request. quotectl sends one per command,
	// so server logs can be matched to a CLI invocation.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans a whole editing session rather than one
	// request: the designer frontend keeps it for the lifetime of the page.
	HeaderCorrelationID = "X-Correlation-ID"

	// Gin keys the ids are stored under.
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"

	// maxIDLength bounds ids accepted from callers.
	maxIDLength = 128
)

// RequestID returns middleware that takes the X-Request-ID header, or a new
// UUID when the header is missing or malformed. The id is echoed on the
// response and stored in the request context for Logging and the API
// clients.
func RequestID() gin.HandlerFunc {
	return idHeader{header: HeaderRequestID, ginKey: ContextKeyRequestID, enrich: ContextWithRequestID}.handler()
}

// CorrelationID does the same for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idHeader{header: HeaderCorrelationID, ginKey: ContextKeyCorrelationID, enrich: ContextWithCorrelationID}.handler()
}

// GetRequestID returns the request ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string { return c.GetString(ContextKeyRequestID) }

// GetCorrelationID returns the correlation ID, or "".
func GetCorrelationID(c *gin.Context) string { return c.GetString(ContextKeyCorrelationID) }

type requestIDKey struct{}

type correlationIDKey struct{}

// RequestIDFromContext returns the request id stored by the RequestID
// middleware, or "" when there is none. API clients forward it downstream.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationIDKey{})
}

// ContextWithRequestID stores a request id in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// ContextWithCorrelationID stores a correlation id in ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func stringValue(ctx context.Context, key any) string {
	if ctx == nil {
		return ""
	}

	s, _ := ctx.Value(key).(string)

	return s
}

// idHeader describes one id carried in a header, stored under a gin key
// and copied into the request context.
type idHeader struct {
	header string
	ginKey string
	enrich func(ctx context.Context, id string) context.Context
}

func (h idHeader) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(h.header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Set(h.ginKey, id)
		c.Header(h.header, id)
		c.Request = c.Request.WithContext(h.enrich(c.Request.Context(), id))

		c.Next()
	}
}

// validID accepts ids made of printable ASCII without spaces. Anything else
// ends up in log lines and response headers, so it is replaced.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}

	return true
}
