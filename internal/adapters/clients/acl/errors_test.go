package acl

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

var quotation7 = resource{entity: "quotation", id: "7"}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
		msg    string
	}{
		{"not found", http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"quotation 7 not found"}}`, domain.ErrNotFound, `quotation with id "7" not found`},
		{"conflict", http.StatusConflict, `{"error":{"code":"CONFLICT","message":"column exists"}}`, domain.ErrConflict, "quotation conflict: column exists"},
		{"bad request", http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST","message":"bad body"}}`, domain.ErrValidation, "bad body"},
		{"forbidden", http.StatusForbidden, `{"error":{"code":"FORBIDDEN","message":"required column"}}`, domain.ErrForbidden, "required column"},
		{"unauthorized without envelope", http.StatusUnauthorized, `{}`, domain.ErrForbidden, "Unauthorized"},
		{"code beats status", http.StatusBadRequest, `{"error":{"code":"FORBIDDEN","message":"id column"}}`, domain.ErrForbidden, "id column"},
		{"rate limited", http.StatusTooManyRequests, ``, domain.ErrUnavailable, "rate limit exceeded"},
		{"server error with trace", http.StatusInternalServerError, `{"error":{"code":"INTERNAL_ERROR","message":"an internal error occurred"},"traceId":"4bf92f"}`, domain.ErrUnavailable, "(trace 4bf92f)"},
		{"gateway timeout", http.StatusGatewayTimeout, ``, domain.ErrUnavailable, "Gateway Timeout"},
		{"html error page", http.StatusBadGateway, `<html>bad gateway</html>`, domain.ErrUnavailable, "Bad Gateway"},
		{"other 4xx", http.StatusTeapot, ``, domain.ErrValidation, "unexpected status 418"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := statusError(response(tt.status, tt.body), quotation7)

			require.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestStatusError_ValidationDetails(t *testing.T) {
	body := `{
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "validation failed",
			"details": {"[0].canvasId": "duplicate id \"canvas-1\"", "column_name": "is required"}
		},
		"traceId": "abc"
	}`

	err := statusError(response(http.StatusBadRequest, body), resource{entity: "layout"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"[0].canvasId": `duplicate id "canvas-1"`,
		"column_name":  "is required",
	}, verr.Details())
}

func TestStatusError_SuccessAndMissing(t *testing.T) {
	assert.NoError(t, statusError(response(http.StatusOK, ""), quotation7))
	assert.NoError(t, statusError(response(http.StatusCreated, `{"status":"success"}`), quotation7))

	assert.True(t, domain.IsUnavailable(statusError(nil, quotation7)))
}

func TestTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"circuit open", clients.ErrCircuitOpen, "circuit breaker open"},
		{"circuit open with hint", &clients.CircuitOpenError{Service: "quotation-api", RetryAfter: 5 * time.Second}, "retry in 5s"},
		{"retries exhausted", clients.ErrMaxRetriesExceeded, "max retries exceeded"},
		{"other", errors.New("dial tcp: refused"), "dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transportError(tt.err)

			assert.True(t, domain.IsUnavailable(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	env, ok := decodeEnvelope(strings.NewReader(`{"error":{"code":"NOT_FOUND","message":"x"},"traceId":"t"}`))
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, env.Error.Code)
	assert.Equal(t, "t", env.TraceID)

	for name, body := range map[string]io.Reader{
		"invalid json": strings.NewReader(`not json`),
		"empty object": strings.NewReader(`{}`),
		"nil body":     nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := decodeEnvelope(body)
			assert.False(t, ok)
		})
	}
}
