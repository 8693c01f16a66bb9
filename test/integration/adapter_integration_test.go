//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotation-service/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quotation-service/internal/adapters/http"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// testAdapterConfig returns a config suitable for adapter integration testing.
func testAdapterConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "quotation-service",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 2,
		},
	}
}

// stack is the full service on a temporary SQLite database.
type stack struct {
	server     *httptest.Server
	client     *clients.Client
	quotations *app.QuotationService
	layouts    *acl.LayoutClient
	api        *acl.QuotationClient
}

// newStack starts the service. front wraps the router, e.g. to inject
// faults between client and service.
func newStack(t *testing.T, front ...func(http.Handler) http.Handler) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver: sqlstore.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "quotation.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	quotations := app.NewQuotationService(app.QuotationServiceConfig{Store: db, Logger: logger})
	layouts := app.NewLayoutService(app.LayoutServiceConfig{Store: db, Logger: logger})

	cfg, err := config.LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(db.Checker()))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.NewDefaultRouterConfig(logger, cfg,
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "abc", "now")),
		httpadapter.Services{
			Tables:      app.NewTableService(app.TableServiceConfig{Store: db, Logger: logger}),
			Quotations:  quotations,
			Preferences: app.NewPreferenceService(app.PreferenceServiceConfig{Store: db, Logger: logger}),
			Layouts:     layouts,
			Designer: app.NewDesignerService(app.DesignerServiceConfig{
				Quotations: quotations,
				Layouts:    layouts,
				Logger:     logger,
			}),
		},
	))

	var h http.Handler = engine
	for _, wrap := range front {
		h = wrap(h)
	}

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := clients.New(testAdapterConfig(srv.URL + config.DefaultAPIPrefix))
	require.NoError(t, err)

	return &stack{
		server:     srv,
		client:     client,
		quotations: quotations,
		layouts:    acl.NewLayoutClient(acl.LayoutClientConfig{Client: client, Logger: logger}),
		api:        acl.NewQuotationClient(acl.QuotationClientConfig{Client: client, Logger: logger}),
	}
}

func (s *stack) seedQuotation(t *testing.T) int64 {
	t.Helper()

	res, err := s.quotations.Create(context.Background(),
		domain.Row{"customer_name": "Acme Labs", "enquiry_ref": "ENQ-7", "mobile_number": "5550100"},
		[]domain.Row{
			{"sample_activity": "Soil test", "specification": "IS 2720", "hsn_sac_code": "9983", "unit": "no", "qty": "2", "unit_rate": "100", "total_cost": "200.00"},
			{"sample_activity": "Water test", "specification": "IS 3025", "hsn_sac_code": "9983", "unit": "no", "qty": "1", "unit_rate": "50.5", "total_cost": "50.50"},
		},
	)
	require.NoError(t, err)

	return res.QuotationID
}

// TestDesigner_EditAndPreview_Integration edits a layout through a session
// backed by the HTTP layout client and renders it on the server.
func TestDesigner_EditAndPreview_Integration(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	id := s.seedQuotation(t)

	palette, err := s.api.Templates(ctx, id)
	require.NoError(t, err)
	_, ok := layout.FindTemplate(palette, "quotation-customer_name")
	require.True(t, ok)

	key := layout.QuotationKey(strconv.FormatInt(id, 10))
	session, err := app.OpenSession(ctx, s.layouts, key, palette, nil)
	require.NoError(t, err)

	for _, tpl := range []string{layout.TemplateHeader, "quotation-customer_name", layout.TemplateTable, layout.TemplateTotal} {
		_, err := session.Insert(tpl, nil)
		require.NoError(t, err)
	}
	require.NoError(t, session.Save(ctx))
	assert.False(t, session.Dirty())

	doc, err := s.layouts.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Len())

	preview, err := s.api.Preview(ctx, id, layout.ScopeQuotation)
	require.NoError(t, err)
	require.Len(t, preview, 4)

	assert.Equal(t, "Acme Labs", preview[1].Block[layout.PropValue])
	require.Len(t, preview[2].Rows, 2)
	assert.Equal(t, "Soil test", preview[2].Rows[0].Description)
	assert.Equal(t, "250.50", preview[3].Total)
}

// TestDesigner_GlobalTemplate_Integration verifies the global template is
// stored apart from quotation layouts.
func TestDesigner_GlobalTemplate_Integration(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	id := s.seedQuotation(t)

	palette, err := s.api.Templates(ctx, 0)
	require.NoError(t, err)
	require.Len(t, palette, len(layout.SpecialTemplates()))
	for i, tpl := range layout.SpecialTemplates() {
		assert.Equal(t, tpl.TemplateID, palette[i].TemplateID)
	}

	session, err := app.OpenSession(ctx, s.layouts, layout.GlobalKey(), palette, nil)
	require.NoError(t, err)

	_, err = session.Insert(layout.TemplateDivider, nil)
	require.NoError(t, err)
	require.NoError(t, session.Save(ctx))

	global, err := s.api.Preview(ctx, id, layout.ScopeGlobal)
	require.NoError(t, err)
	assert.Len(t, global, 1)

	own, err := s.api.Preview(ctx, id, layout.ScopeQuotation)
	require.NoError(t, err)
	assert.Empty(t, own)

	require.NoError(t, s.layouts.Delete(ctx, layout.GlobalKey()))

	doc, err := s.layouts.Load(ctx, layout.GlobalKey())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

// TestQuotationClient_ErrorMapping_Integration verifies server errors reach
// the client as domain errors.
func TestQuotationClient_ErrorMapping_Integration(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.api.Get(ctx, 999)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err), "expected NotFoundError, got %v", err)

	_, err = s.api.Templates(ctx, 999)
	assert.True(t, domain.IsNotFound(err), "expected NotFoundError, got %v", err)
}

// TestQuotationClient_List_Integration verifies quotations are listed with
// their items and totals.
func TestQuotationClient_List_Integration(t *testing.T) {
	s := newStack(t)
	id := s.seedQuotation(t)

	all, err := s.api.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	assert.Equal(t, id, all[0].ID())
	assert.Len(t, all[0].Items, 2)
	assert.Equal(t, "250.50", all[0].Total)
}

// TestHealth_Integration verifies the probes see the database.
func TestHealth_Integration(t *testing.T) {
	s := newStack(t)

	for _, path := range []string{"/-/live", "/-/ready", "/-/build"} {
		resp, err := http.Get(s.server.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

// TestLayoutClient_CircuitOpen_Integration verifies an open circuit is
// reported as unavailable without reaching the server.
func TestLayoutClient_CircuitOpen_Integration(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testAdapterConfig(server.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 2

	client, err := clients.New(cfg)
	require.NoError(t, err)

	lc := acl.NewLayoutClient(acl.LayoutClientConfig{Client: client})
	key := layout.QuotationKey("1")

	_, _ = lc.Load(context.Background(), key)
	_, _ = lc.Load(context.Background(), key)

	callsBefore := calls
	_, err = lc.Load(context.Background(), key)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err), "expected UnavailableError")
	assert.Equal(t, callsBefore, calls, "no server call when circuit is open")
}
