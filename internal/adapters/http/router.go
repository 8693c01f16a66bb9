package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
	"github.com/jsamuelsen/quotation-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// CORS lists the browser origins allowed to call the API.
	CORS config.CORSConfig

	// APIPrefix is the route group of the business endpoints.
	// Empty mounts them at the root.
	APIPrefix string

	// Timeout is the default request timeout.
	Timeout time.Duration

	HealthHandler     *handlers.HealthHandler
	TableHandlers     []*handlers.TableHandler
	QuotationHandler  *handlers.QuotationHandler
	PreferenceHandler *handlers.PreferenceHandler
	DesignerHandler   *handlers.DesignerHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. CORS, so preflight requests short-circuit before anything else
//  3. Request ID and Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Logging
//
// Route groups:
//   - /-/ : health, build info and metrics
//   - <api prefix>/ : the quotation API, with a request timeout
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	countPanic := telemetry.PanicCounter()

	engine.Use(
		middleware.Recovery(cfg.Logger, func(c *gin.Context, _ any, _ []byte) {
			countPanic(c.Request.Context(), c.FullPath())
		}),
		middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAge),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	name := "quotation-service"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		name = cfg.AppConfig.Name
	}

	engine.Use(telemetry.Middleware(name)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group(cfg.APIPrefix)
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(api, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	for _, h := range cfg.TableHandlers {
		h.RegisterTableRoutes(rg)
	}

	if cfg.QuotationHandler != nil {
		cfg.QuotationHandler.RegisterQuotationRoutes(rg)
	}

	if cfg.PreferenceHandler != nil {
		cfg.PreferenceHandler.RegisterPreferenceRoutes(rg)
	}

	if cfg.DesignerHandler != nil {
		cfg.DesignerHandler.RegisterDesignerRoutes(rg)
	}
}

// Services groups the application services the API is built from.
type Services struct {
	Tables      *app.TableService
	Quotations  *app.QuotationService
	Preferences *app.PreferenceService
	Layouts     *app.LayoutService
	Designer    *app.DesignerService
}

// NewDefaultRouterConfig builds a RouterConfig with one table handler per
// entity and the remaining handlers from svc.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	svc Services,
) RouterConfig {
	tables := make([]*handlers.TableHandler, 0, len(domain.Entities))
	for _, e := range domain.Entities {
		tables = append(tables, handlers.NewTableHandler(e, svc.Tables, svc.Preferences))
	}

	return RouterConfig{
		Logger:            logger,
		AppConfig:         &cfg.App,
		CORS:              cfg.CORS,
		APIPrefix:         cfg.Server.APIPrefix,
		Timeout:           DefaultRequestTimeout,
		HealthHandler:     healthHandler,
		TableHandlers:     tables,
		QuotationHandler:  handlers.NewQuotationHandler(svc.Quotations),
		PreferenceHandler: handlers.NewPreferenceHandler(svc.Preferences, svc.Layouts),
		DesignerHandler:   handlers.NewDesignerHandler(svc.Designer),
	}
}
