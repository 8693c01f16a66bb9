package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// createGinContext creates a Gin context for handler testing.
func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

// setupHealthHandler creates a HealthHandler with a minimal registry for benchmarking.
func setupHealthHandler() *handlers.HealthHandler {
	registry := ports.NewHealthRegistry()
	_ = registry.Register(ports.NewChecker("sqlite", func(context.Context) error { return nil }))

	buildInfo := handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z").
		WithBackends("sqlite", "sql")

	return handlers.NewHealthHandler(registry, buildInfo)
}

// BenchmarkLivenessHandler measures the liveness probe.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.Liveness(createGinContext(w, req))
	}
}

// BenchmarkReadinessHandler measures readiness with one storage check.
func BenchmarkReadinessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.Readiness(createGinContext(w, req))
	}
}

// BenchmarkMiddlewareChain measures the API middleware stack in front of a
// trivial handler.
func BenchmarkMiddlewareChain(b *testing.B) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.CORS(nil, 0),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.Logging(logger),
	)
	router.GET("/api/v1/quotation/columns", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotation/columns", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// benchLayout builds a layout of n blocks cycling through the palette.
func benchLayout(b *testing.B, n int) []layout.Block {
	b.Helper()

	palette := layout.BuildTemplates(map[string]any{
		"customer_name": "Acme Labs",
		"enquiry_ref":   "ENQ-7",
		"mobile_number": "5550100",
	})

	doc := layout.NewDocument()
	for i := 0; i < n; i++ {
		doc.InsertFromTemplate(palette[i%len(palette)], nil)
	}

	return doc.Blocks()
}

// BenchmarkLayoutEncode measures serializing a 50-block layout.
func BenchmarkLayoutEncode(b *testing.B) {
	blocks := benchLayout(b, 50)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := layout.Encode(blocks); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLayoutDecode measures parsing a stored 50-block layout.
func BenchmarkLayoutDecode(b *testing.B) {
	data, err := layout.Encode(benchLayout(b, 50))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := layout.Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPreviewRender measures rendering a layout against 100 items.
func BenchmarkPreviewRender(b *testing.B) {
	blocks := benchLayout(b, 50)

	items := make([]domain.Row, 100)
	for i := range items {
		items[i] = domain.Row{
			"sample_activity": "Soil test",
			"qty":             "2",
			"unit_rate":       "100",
			"total_cost":      "200.00",
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = layout.Render(blocks, items)
	}
}
