// Package dto provides the request bodies, response shapes and error envelope
// of the quotation HTTP API.
package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
)

// ContextKeyTraceID is the gin context key a handler may set to override the
// trace id reported in error envelopes.
const ContextKeyTraceID = "trace_id"

// ErrorResponse is the standard error envelope for all error responses.
// It provides a consistent structure for API error handling.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details provides additional context about the error.
	// For validation errors, this contains field-level error messages.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeConflict indicates a state conflict (duplicate, version mismatch).
	ErrorCodeConflict = "CONFLICT"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeForbidden indicates the operation is not permitted.
	ErrorCodeForbidden = "FORBIDDEN"

	// ErrorCodeUnauthorized indicates authentication is required.
	ErrorCodeUnauthorized = "UNAUTHORIZED"

	// ErrorCodeUnavailable indicates a dependency is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"

	// ErrorCodeTooLarge indicates the body exceeded server.max_request_size,
	// typically a layout carrying large embedded images.
	ErrorCodeTooLarge = "PAYLOAD_TOO_LARGE"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusServiceUnavailable
	case ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// MapError maps a domain error to an HTTP status and error envelope.
// Unknown errors become 500 with a generic message.
func MapError(err error) (int, *ErrorResponse) {
	var resp *ErrorResponse

	switch {
	case domain.IsNotFound(err):
		resp = NewErrorResponse(ErrorCodeNotFound, err.Error())
	case domain.IsConflict(err):
		resp = NewErrorResponse(ErrorCodeConflict, err.Error())
	case domain.IsValidation(err):
		resp = NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			if details := validationErr.Details(); len(details) > 0 {
				resp.Error.Details = details
			}
		}
	case domain.IsForbidden(err):
		resp = NewErrorResponse(ErrorCodeForbidden, err.Error())
	case domain.IsUnavailable(err):
		resp = NewErrorResponse(ErrorCodeUnavailable, "a dependency is temporarily unavailable")
	default:
		resp = NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}

	return HTTPStatusFromCode(resp.Error.Code), resp
}

// HandleError writes the envelope for err. Internal and unavailable errors
// are logged with their full text since the response hides it.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			slog.String("error", err.Error()),
			slog.Int("status", status),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// AbortWithBadRequest stops the chain with a 400 for malformed input that
// never reached the domain, such as a non-numeric path id.
func AbortWithBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		NewErrorResponse(ErrorCodeBadRequest, message).WithTraceID(GetTraceID(c)))
}

// AbortWithValidation stops the chain with a 400 carrying field details.
func AbortWithValidation(c *gin.Context, err error) {
	if AbortIfTooLarge(c, err) {
		return
	}

	details := ValidationErrors(err)
	if len(details) == 0 {
		AbortWithBadRequest(c, err.Error())
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest,
		NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", details).
			WithTraceID(GetTraceID(c)))
}

// AbortIfTooLarge answers 413 when reading the body hit the size limit and
// reports whether it did.
func AbortIfTooLarge(c *gin.Context, err error) bool {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return false
	}

	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
		NewErrorResponse(ErrorCodeTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)).
			WithTraceID(GetTraceID(c)))

	return true
}

// GetTraceID returns the id reported to clients for c: an explicit trace id
// set on the gin context, then the active span, then the request id header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		s, _ := v.(string)
		return s
	}

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}
