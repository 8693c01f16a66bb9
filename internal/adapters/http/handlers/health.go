// Package handlers provides the gin handlers of the quotation API: dynamic
// tables, quotations with items, user preferences and stored layouts, the
// designer helpers and the operational /-/ endpoints.
package handlers

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// BuildInfo is served on /-/build. Version, Commit and BuildTime come from
// ldflags; StorageDriver and LayoutBackend describe the wired stores.
type BuildInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	BuildTime     string `json:"buildTime"`
	GoVersion     string `json:"goVersion"`
	StorageDriver string `json:"storageDriver,omitempty"`
	LayoutBackend string `json:"layoutBackend,omitempty"`
}

// WithBackends returns a copy of b describing the configured stores.
func (b BuildInfo) WithBackends(storageDriver, layoutBackend string) BuildInfo {
	b.StorageDriver = storageDriver
	b.LayoutBackend = layoutBackend

	return b
}

// NewBuildInfo creates a BuildInfo for the running Go version.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the operational endpoints under /-/.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	started   time.Time
	now       func() time.Time
}

// NewHealthHandler creates a health handler. Uptime counts from this call.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		started:   time.Now(),
		now:       time.Now,
	}
}

type livenessResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Liveness answers as long as the process serves HTTP. It never looks at
// the database or the layout store; a restart would not fix those.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status: "ok",
		Uptime: h.now().Sub(h.started).Truncate(time.Second).String(),
	})
}

type readinessResponse struct {
	Status    string                        `json:"status"`
	Checks    map[string]*ports.CheckResult `json:"checks,omitempty"`
	Timestamp time.Time                     `json:"timestamp"`
}

// Readiness runs the registered checks (SQL database, layout store) and
// answers 503 when any of them fails.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable

		logging.FromContext(c.Request.Context()).Warn("not ready",
			slog.Any("failing", result.Failing()))
	}

	c.JSON(status, readinessResponse{
		Status:    string(result.Status),
		Checks:    result.Checks,
		Timestamp: result.Timestamp,
	})
}

// BuildInfoHandler serves the build metadata and the wired backends.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterHealthRoutes registers live, ready, build and metrics on rg.
// Probes may use HEAD on live and ready.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rg.Handle(method, "/live", h.Liveness)
		rg.Handle(method, "/ready", h.Readiness)
	}

	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler()))
}

// RegisterHealthRoutesOnEngine registers the routes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
