package clients

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:     baseURL,
		ServiceName: "quotation-api",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func newTestClient(t *testing.T, baseURL string, tweak ...func(*Config)) *Client {
	t.Helper()

	cfg := testConfig(baseURL)
	for _, fn := range tweak {
		fn(cfg)
	}

	c, err := New(cfg)
	require.NoError(t, err)

	return c
}

// flaky answers with the given statuses in order, then 200 with the
// request body echoed back. It counts calls.
func flaky(calls *atomic.Int32, statuses ...int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		if n <= len(statuses) {
			w.WriteHeader(statuses[n-1])
			return
		}

		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorContains(t, err, "config is required")

	cfg := testConfig("")
	cfg.ServiceName = ""
	_, err = New(cfg)
	assert.ErrorContains(t, err, "service name is required")

	c := newTestClient(t, "http://localhost:8080/api/v1/", func(c *Config) { c.Timeout = 0 })
	assert.Equal(t, "http://localhost:8080/api/v1", c.baseURL)
	assert.Equal(t, defaultTimeout, c.http.Timeout)
	assert.Equal(t, StateClosed, c.CircuitState())
}

func TestBuildURL(t *testing.T) {
	c := newTestClient(t, "http://localhost:8080/api/v1")

	assert.Equal(t, "http://localhost:8080/api/v1/quotations", c.buildURL("/quotations"))
	assert.Equal(t, "http://localhost:8080/api/v1/layouts/global", c.buildURL("layouts/global"))
}

func TestDo_PropagatesHeaders(t *testing.T) {
	var got http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) {
		c.Header = http.Header{"User-Agent": {"quotectl/1.0"}}
	})

	ctx := middleware.ContextWithRequestID(context.Background(), "req-42")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-7")

	resp, err := c.Get(ctx, "/quotations")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "req-42", got.Get(middleware.HeaderRequestID))
	assert.Equal(t, "corr-7", got.Get(middleware.HeaderCorrelationID))
	assert.Equal(t, "quotectl/1.0", got.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestDo_Retries(t *testing.T) {
	tests := []struct {
		name     string
		send     func(ctx context.Context, c *Client) (*http.Response, error)
		statuses []int
		status   int
		calls    int32
	}{
		{
			name:     "get recovers from 503",
			send:     func(ctx context.Context, c *Client) (*http.Response, error) { return c.Get(ctx, "/quotations") },
			statuses: []int{http.StatusServiceUnavailable, http.StatusBadGateway},
			status:   http.StatusOK,
			calls:    3,
		},
		{
			name:     "delete recovers from 500",
			send:     func(ctx context.Context, c *Client) (*http.Response, error) { return c.Delete(ctx, "/layouts/global") },
			statuses: []int{http.StatusInternalServerError},
			status:   http.StatusOK,
			calls:    2,
		},
		{
			name: "post is sent once",
			send: func(ctx context.Context, c *Client) (*http.Response, error) {
				return c.SendJSON(ctx, http.MethodPost, "/quotations", map[string]any{"customer_name": "Acme"})
			},
			statuses: []int{http.StatusServiceUnavailable},
			status:   http.StatusServiceUnavailable,
			calls:    1,
		},
		{
			name: "idempotent post is repeated",
			send: func(ctx context.Context, c *Client) (*http.Response, error) {
				return c.SendJSON(Idempotent(ctx), http.MethodPost, "/layouts/global", map[string]any{"layout": []any{}})
			},
			statuses: []int{http.StatusServiceUnavailable},
			status:   http.StatusOK,
			calls:    2,
		},
		{
			name:     "client errors are final",
			send:     func(ctx context.Context, c *Client) (*http.Response, error) { return c.Get(ctx, "/quotations/9") },
			statuses: []int{http.StatusNotFound},
			status:   http.StatusNotFound,
			calls:    1,
		},
		{
			name:     "last server error is handed back",
			send:     func(ctx context.Context, c *Client) (*http.Response, error) { return c.Get(ctx, "/quotations") },
			statuses: []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusGatewayTimeout},
			status:   http.StatusGatewayTimeout,
			calls:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(flaky(&calls, tt.statuses...))
			defer srv.Close()

			resp, err := tt.send(context.Background(), newTestClient(t, srv.URL))
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.calls, calls.Load())
		})
	}
}

func TestDo_ReplaysBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(flaky(&calls, http.StatusBadGateway))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	resp, err := c.SendJSON(context.Background(), http.MethodPut, "/quotations/5", map[string]any{"customer_name": "Acme Labs"})
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.JSONEq(t, `{"customer_name":"Acme Labs"}`, string(body))
	assert.EqualValues(t, 2, calls.Load())
}

func TestDo_HonoursRetryAfter(t *testing.T) {
	var calls atomic.Int32
	var first time.Time

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			first = time.Now()
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) { c.Retry.MaxInterval = 30 * time.Millisecond })

	resp, err := c.Get(context.Background(), "/quotations")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, time.Since(first), 500*time.Millisecond, "wait is capped by the max interval")
}

func TestDo_TransportFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := newTestClient(t, "http://"+addr)

	_, err = c.Get(context.Background(), "/quotations")
	require.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Contains(t, err.Error(), "after 3 attempts")

	_, err = c.SendJSON(context.Background(), http.MethodPost, "/quotations", map[string]any{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMaxRetriesExceeded, "a single attempt is not a retry")
}

func TestDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) {
		c.Timeout = 20 * time.Millisecond
		c.Retry.MaxAttempts = 1
	})

	_, err := c.Get(context.Background(), "/quotations")
	assert.Error(t, err)
}

func TestDo_CallerCancels(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(flaky(&calls, http.StatusServiceUnavailable, http.StatusServiceUnavailable))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) {
		c.Retry.InitialInterval = time.Second
		c.Retry.MaxInterval = time.Second
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "/quotations")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualValues(t, 1, calls.Load())
}

func TestDo_CircuitOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) {
		c.Retry.MaxAttempts = 1
		c.Circuit.MaxFailures = 2
		c.Circuit.Timeout = time.Minute
	})

	for range 2 {
		resp, err := c.Get(context.Background(), "/quotations")
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, StateOpen, c.CircuitState())

	_, err := c.Get(context.Background(), "/quotations")

	var open *CircuitOpenError
	require.ErrorAs(t, err, &open)
	assert.Equal(t, "quotation-api", open.Service)
	assert.Positive(t, open.RetryAfter)
	assert.EqualValues(t, 2, calls.Load(), "blocked call never reached the server")
}

func TestDo_ClientErrorsKeepCircuitClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) { c.Circuit.MaxFailures = 1 })

	for range 3 {
		resp, err := c.SendJSON(context.Background(), http.MethodPost, "/quotations/5/items", map[string]any{"qty": "x"})
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, StateClosed, c.CircuitState())
}

func TestDecodeJSON(t *testing.T) {
	resp := &http.Response{Body: io.NopCloser(strings.NewReader(`{"id":5,"customer_name":"Acme"}`))}

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"customer_name"`
	}
	require.NoError(t, DecodeJSON(resp, &out))
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "Acme", out.Name)

	bad := &http.Response{Body: io.NopCloser(strings.NewReader(`<html>`))}
	assert.ErrorContains(t, DecodeJSON(bad, &out), "decoding response")
}

func TestRepeatable(t *testing.T) {
	p := newRetryPolicy(config.RetryConfig{MaxAttempts: 3})
	ctx := context.Background()

	req := func(method string, body io.Reader) *http.Request {
		return httptest.NewRequest(method, "/quotations", body)
	}

	// httptest requests carry no GetBody, so their bodies cannot be replayed.
	streamed := req(http.MethodPut, strings.NewReader("{}"))

	assert.True(t, p.repeatable(ctx, req(http.MethodGet, nil)))
	assert.True(t, p.repeatable(ctx, req(http.MethodDelete, nil)))
	assert.False(t, p.repeatable(ctx, req(http.MethodPost, nil)))
	assert.True(t, p.repeatable(Idempotent(ctx), req(http.MethodPost, nil)))
	assert.False(t, p.repeatable(ctx, req(http.MethodPatch, nil)))
	assert.False(t, p.repeatable(ctx, streamed), "unreplayable body")
}

func TestNext(t *testing.T) {
	p := newRetryPolicy(config.RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
	})

	status := func(code int, retryAfter string) *http.Response {
		h := http.Header{}
		if retryAfter != "" {
			h.Set("Retry-After", retryAfter)
		}
		return &http.Response{StatusCode: code, Header: h}
	}

	tests := []struct {
		name  string
		resp  *http.Response
		err   error
		again bool
		wait  time.Duration
	}{
		{"ok", status(http.StatusOK, ""), nil, false, 0},
		{"not found", status(http.StatusNotFound, ""), nil, false, 0},
		{"conflict", status(http.StatusConflict, ""), nil, false, 0},
		{"unavailable with hint", status(http.StatusServiceUnavailable, "1"), nil, true, time.Second},
		{"hint beyond max", status(http.StatusTooManyRequests, "120"), nil, true, 2 * time.Second},
		{"connection refused", nil, &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true, -1},
		{"caller cancelled", nil, context.Canceled, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wait, again := p.next(1, tt.resp, tt.err)

			assert.Equal(t, tt.again, again)
			if tt.wait >= 0 {
				assert.Equal(t, tt.wait, wait)
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	p := newRetryPolicy(config.RetryConfig{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	})

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{6, time.Second},
	}

	for _, tt := range tests {
		for range 20 {
			d := p.backoff(tt.attempt)
			assert.InDelta(t, float64(tt.base), float64(d), float64(tt.base)/10+1, "attempt %d", tt.attempt)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"", 0, false},
		{"3", 3 * time.Second, true},
		{"-1", 0, false},
		{"soon", 0, false},
		{now.Add(10 * time.Second).Format(http.TimeFormat), 10 * time.Second, true},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0, true},
	}

	for _, tt := range tests {
		got, ok := retryAfter(tt.in, now)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.False(t, isRetryableError(context.Canceled))
	assert.False(t, isRetryableError(context.DeadlineExceeded))
	assert.False(t, isRetryableError(errors.New("malformed URL")))
	assert.True(t, isRetryableError(&net.OpError{Op: "read", Err: syscall.ECONNRESET}))
	assert.True(t, isRetryableError(io.ErrUnexpectedEOF))
}

func TestNewTransport(t *testing.T) {
	tr := newTransport(config.TransportConfig{MaxIdleConnsPerHost: 4})

	assert.Equal(t, defaultMaxIdleConns, tr.MaxIdleConns)
	assert.Equal(t, 4, tr.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, tr.IdleConnTimeout)
	assert.NotNil(t, tr.Proxy)
}
