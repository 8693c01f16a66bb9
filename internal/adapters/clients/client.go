package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
)

const scope = "github.com/jsamuelsen/quotation-service/internal/adapters/clients"

const (
	defaultTimeout = 30 * time.Second

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path, e.g. "http://localhost:8080/api/v1".
	BaseURL string

	// ServiceName names the remote side in logs, spans and errors.
	ServiceName string

	// Timeout bounds a single attempt. Retries and their waits come on top.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Header is copied onto every attempt, e.g. a User-Agent.
	Header http.Header

	Logger *slog.Logger
}

// Client talks to the quotation API. Each call passes a circuit breaker,
// runs inside a client span and is retried when the request is safe to
// repeat.
type Client struct {
	http    *http.Client
	baseURL string
	name    string
	header  http.Header
	policy  retryPolicy
	breaker *CircuitBreaker
	logger  *slog.Logger
	tracer  trace.Tracer
	inst    instruments
}

// New builds a Client from cfg. A zero Timeout means 30s.
func New(cfg *Config) (*Client, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case cfg.ServiceName == "":
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "clients"), slog.String("downstream", cfg.ServiceName))

	inst, err := newInstruments(otel.Meter(scope))
	if err != nil {
		return nil, err
	}

	breaker := NewCircuitBreaker(cfg.Circuit)
	breaker.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: newTransport(cfg.Transport)},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		name:    cfg.ServiceName,
		header:  cfg.Header.Clone(),
		policy:  newRetryPolicy(cfg.Retry),
		breaker: breaker,
		logger:  logger,
		tracer:  otel.Tracer(scope),
		inst:    inst,
	}, nil
}

// Do sends req. Failed attempts are repeated for GET, HEAD, PUT and DELETE,
// and for POST only when ctx was marked with Idempotent. A body is replayed
// through req.GetBody, which http.NewRequest sets for in-memory readers.
//
// Do fails when no attempt produced a usable response. Any response that
// arrived, error statuses included, is returned for the caller to inspect.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.name),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.breaker.Allow() {
		wait := c.breaker.RetryAfter()
		c.inst.record(ctx, c.name, req.Method, 0, time.Since(start), "circuit_open")
		logger.Warn("request blocked by circuit breaker", slog.Duration("retry_after", wait))

		return nil, &CircuitOpenError{Service: c.name, RetryAfter: wait}
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()

	c.injectHeaders(ctx, req)

	attempts := 1
	if c.policy.repeatable(ctx, req) {
		attempts = c.policy.maxAttempts
	}

	resp, err := c.send(ctx, req, attempts, logger)
	elapsed := time.Since(start)

	if err != nil {
		c.breaker.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.inst.record(ctx, c.name, req.Method, 0, elapsed, outcome(err))
		logger.Error("request failed", slog.Duration("duration", elapsed), slog.Any("error", err))

		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.breaker.RecordFailure()
	} else {
		c.breaker.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(resp.StatusCode))
	}

	c.inst.record(ctx, c.name, req.Method, resp.StatusCode, elapsed, strconv.Itoa(resp.StatusCode/100)+"xx")
	logger.Debug("request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", elapsed))

	return resp, nil
}

// send runs up to attempts tries of req. When every try failed the last
// failure is wrapped in ErrMaxRetriesExceeded; a retryable status on the
// final try is handed back as is.
func (c *Client) send(ctx context.Context, req *http.Request, attempts int, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		resp, err := c.http.Do(req.WithContext(ctx))

		wait, again := c.policy.next(attempt, resp, err)
		if !again || attempt >= attempts {
			switch {
			case err == nil:
				return resp, nil
			case attempt > 1:
				return nil, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt, err)
			default:
				return nil, err
			}
		}

		if err != nil {
			lastErr = err
			logger.Debug("attempt failed", slog.Int("attempt", attempt), slog.Any("error", err))
		} else {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			logger.Debug("attempt failed", slog.Int("attempt", attempt), slog.Int("status", resp.StatusCode))
			drain(resp)
		}

		if err := sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt, errors.Join(err, lastErr))
		}

		if err := rewindBody(req); err != nil {
			return nil, err
		}
	}
}

// Get sends a GET for path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.SendJSON(ctx, http.MethodGet, path, nil)
}

// Delete sends a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.SendJSON(ctx, http.MethodDelete, path, nil)
}

// SendJSON sends in as a JSON body with the given method. A nil in sends no
// body.
func (c *Client) SendJSON(ctx context.Context, method, path string, in any) (*http.Response, error) {
	body := io.Reader(http.NoBody)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.Do(ctx, req)
}

// CircuitState reports the breaker state.
func (c *Client) CircuitState() State {
	return c.breaker.State()
}

// DecodeJSON decodes a response body into out and closes it.
func DecodeJSON(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	for name, values := range c.header {
		req.Header[name] = values
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = orDefault(cfg.MaxIdleConns, defaultMaxIdleConns)
	t.MaxIdleConnsPerHost = orDefault(cfg.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost)
	t.IdleConnTimeout = orDefault(cfg.IdleConnTimeout, defaultIdleConnTimeout)

	return t
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}

	return v
}

// instruments holds the client metrics.
type instruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

func newInstruments(meter metric.Meter) (instruments, error) {
	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of calls to the quotation API, retries included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return instruments{}, fmt.Errorf("creating duration metric: %w", err)
	}

	total, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Calls to the quotation API by outcome"),
	)
	if err != nil {
		return instruments{}, fmt.Errorf("creating request counter: %w", err)
	}

	return instruments{duration: duration, total: total}, nil
}

func (i instruments) record(ctx context.Context, service, method string, status int, d time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", service),
		attribute.String("result", result),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	i.duration.Record(ctx, d.Seconds(), opt)
	i.total.Add(ctx, 1, opt)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "context_canceled"
	case errors.Is(err, ErrMaxRetriesExceeded):
		return "retries_exhausted"
	default:
		return "error"
	}
}
