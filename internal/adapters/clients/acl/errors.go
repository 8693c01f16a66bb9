// Package acl translates the quotation API's HTTP responses into domain
// values and domain errors for remote callers such as quotectl.
package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Error codes the quotation API puts in its error envelope.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeValidation  = "VALIDATION_ERROR"
	CodeBadRequest  = "BAD_REQUEST"
	CodeForbidden   = "FORBIDDEN"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
)

// envelope is the error body every non-2xx API response carries.
type envelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
	TraceID string `json:"traceId,omitempty"`
}

// decodeEnvelope reads an error body. ok is false for empty, foreign or
// malformed bodies.
func decodeEnvelope(body io.Reader) (env envelope, ok bool) {
	if body == nil {
		return env, false
	}

	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return envelope{}, false
	}

	return env, env.Error.Code != "" || env.Error.Message != ""
}

// resource names what a call was about, for not-found and conflict errors.
type resource struct {
	entity string
	id     string
}

// transportError maps a call that produced no response.
func transportError(err error) error {
	var open *clients.CircuitOpenError

	switch {
	case errors.As(err, &open) && open.RetryAfter > 0:
		return domain.NewUnavailableError(ServiceName,
			fmt.Sprintf("circuit breaker open, retry in %s", open.RetryAfter.Round(time.Second)))
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(ServiceName, "circuit breaker open")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(ServiceName, "max retries exceeded")
	}

	return domain.NewUnavailableError(ServiceName, err.Error())
}

// statusError maps a non-2xx response to a domain error and returns nil
// for 2xx. The envelope code wins over the status when the API sent one.
func statusError(resp *http.Response, r resource) error {
	if resp == nil {
		return domain.NewUnavailableError(ServiceName, "no response received")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	env, ok := decodeEnvelope(resp.Body)

	message := http.StatusText(resp.StatusCode)
	if ok && env.Error.Message != "" {
		message = env.Error.Message
	}

	code := env.Error.Code
	if !ok || code == "" {
		code = codeForStatus(resp.StatusCode)
	}

	switch code {
	case CodeNotFound:
		return domain.NewNotFoundError(r.entity, r.id)
	case CodeConflict:
		return domain.NewConflictError(r.entity, message)
	case CodeValidation, CodeBadRequest:
		if len(env.Error.Details) > 0 {
			return domain.NewFieldsValidationError(env.Error.Details)
		}
		return domain.NewValidationError("", message)
	case CodeForbidden:
		return domain.NewForbiddenError(r.entity, message)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return domain.NewUnavailableError(ServiceName, "rate limit exceeded")
	}

	if resp.StatusCode >= http.StatusInternalServerError || code == CodeUnavailable {
		if env.TraceID != "" {
			message += " (trace " + env.TraceID + ")"
		}
		return domain.NewUnavailableError(ServiceName, message)
	}

	return domain.NewValidationError("", fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, message))
}

// codeForStatus stands in for a missing envelope code.
func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusForbidden, http.StatusUnauthorized:
		return CodeForbidden
	}

	return ""
}
