package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen/quotation-service/internal/platform/config"
)

const (
	defaultJitter = 0.25

	// drainLimit caps how much of a discarded body is read so the
	// connection can be reused.
	drainLimit = 4 << 10
)

type idempotentKey struct{}

// Idempotent marks requests sent with ctx as safe to repeat even when their
// method is POST. Layout saves use it: a save replaces the whole layout.
func Idempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

func isIdempotent(ctx context.Context) bool {
	v, _ := ctx.Value(idempotentKey{}).(bool)
	return v
}

type retryPolicy struct {
	maxAttempts int
	initial     time.Duration
	max         time.Duration
	multiplier  float64
	jitter      float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	p := retryPolicy{
		maxAttempts: max(cfg.MaxAttempts, 1),
		initial:     cfg.InitialInterval,
		max:         cfg.MaxInterval,
		multiplier:  cfg.Multiplier,
		jitter:      cfg.JitterFactor,
	}

	if p.multiplier < 1 {
		p.multiplier = 1
	}
	if p.jitter <= 0 {
		p.jitter = defaultJitter
	}
	if p.max < p.initial {
		p.max = p.initial
	}

	return p
}

// repeatable reports whether req may be sent more than once.
func (p retryPolicy) repeatable(ctx context.Context, req *http.Request) bool {
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return false
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	case http.MethodPost:
		return isIdempotent(ctx)
	default:
		return false
	}
}

// next decides whether the outcome of attempt n (counted from 1) is worth
// another try and how long to wait first. A Retry-After header on 429 and
// 503 replaces the computed backoff, bounded by the configured maximum.
func (p retryPolicy) next(n int, resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return p.backoff(n), isRetryableError(err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		if d, ok := retryAfter(resp.Header.Get("Retry-After"), time.Now()); ok {
			return min(d, p.max), true
		}
		return p.backoff(n), true
	case http.StatusBadGateway, http.StatusGatewayTimeout, http.StatusInternalServerError:
		return p.backoff(n), true
	default:
		return 0, false
	}
}

// backoff grows the wait exponentially from the initial interval after
// attempt n, caps it and spreads it by the jitter fraction either way.
func (p retryPolicy) backoff(n int) time.Duration {
	d := float64(p.initial) * math.Pow(p.multiplier, float64(n-1))
	d = math.Min(d, float64(p.max))

	spread := rand.Float64()*2 - 1 //nolint:gosec // jitter only
	d += d * p.jitter * spread

	return time.Duration(d)
}

// retryAfter parses a Retry-After value in seconds or as an HTTP date.
func retryAfter(v string, now time.Time) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}

	at, err := http.ParseTime(v)
	if err != nil {
		return 0, false
	}

	return max(at.Sub(now), 0), true
}

// isRetryableError reports whether a transport error is worth another
// attempt. Cancellation by the caller never is.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func drain(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
	_ = resp.Body.Close()
}

// rewindBody resets a consumed request body before another attempt.
func rewindBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody == nil {
		return nil
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}

	req.Body = body

	return nil
}
