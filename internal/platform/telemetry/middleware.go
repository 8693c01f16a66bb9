package telemetry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quotation-service/telemetry"

// HeaderTraceID carries the trace of a request back to the caller so a
// failed designer save can be found in the trace backend.
const HeaderTraceID = "X-Trace-ID"

// unmatchedRoute labels requests that hit no registered route. Raw paths
// would give every quotation id its own series.
const unmatchedRoute = "unmatched"

type serverInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
	bodySize metric.Int64Histogram
}

func newServerInstruments(meter metric.Meter) (*serverInstruments, error) {
	var inst serverInstruments
	var errs [4]error

	inst.duration, errs[0] = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Time to serve a request"), metric.WithUnit("s"))
	inst.total, errs[1] = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Requests served"))
	inst.active, errs[2] = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Requests in flight"))
	inst.bodySize, errs[3] = meter.Int64Histogram("http.server.request.body.size",
		metric.WithDescription("Declared request body size; layout saves dominate"), metric.WithUnit("By"))

	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}

	return &inst, nil
}

// Middleware returns otelgin tracing followed by request metrics. Register
// both with engine.Use(telemetry.Middleware(name)...).
func Middleware(serviceName string, opts ...otelgin.Option) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName, opts...),
		requestMetrics(otel.Meter(instrumentationName)),
	}
}

func requestMetrics(meter metric.Meter) gin.HandlerFunc {
	inst, err := newServerInstruments(meter)
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		exposeTraceID(c)

		if inst == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		inFlight := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		)
		inst.active.Add(ctx, 1, inFlight)
		defer inst.active.Add(ctx, -1, inFlight)

		start := time.Now()
		c.Next()

		done := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.status_code", strconv.Itoa(c.Writer.Status())),
		)
		inst.duration.Record(ctx, time.Since(start).Seconds(), done)
		inst.total.Add(ctx, 1, done)

		if n := c.Request.ContentLength; n > 0 {
			inst.bodySize.Record(ctx, n, done)
		}
	}
}

// exposeTraceID must run before the handler writes, gin drops headers set
// after that.
func exposeTraceID(c *gin.Context) {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		c.Header(HeaderTraceID, sc.TraceID().String())
	}
}

// PanicCounter returns a function that counts recovered panics by route.
func PanicCounter() func(ctx context.Context, route string) {
	panics, err := otel.Meter(instrumentationName).Int64Counter(
		"http.server.panics",
		metric.WithDescription("Handler panics turned into 500 responses"),
	)
	if err != nil {
		otel.Handle(err)
		return func(context.Context, string) {}
	}

	return func(ctx context.Context, route string) {
		panics.Add(ctx, 1, metric.WithAttributes(attribute.String("http.route", route)))
	}
}
