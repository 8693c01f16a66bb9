package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
)

// ServiceName identifies the quotation API in errors and health checks.
const ServiceName = "quotation-api"

// LayoutClientConfig contains configuration for the layout client.
type LayoutClientConfig struct {
	// Client's BaseURL must include the server's API prefix, if it sets one.
	Client *clients.Client

	Logger *slog.Logger

	// DocumentOptions are applied to every loaded document.
	DocumentOptions []layout.Option
}

// LayoutClient loads and saves designer layouts through the quotation API.
// It satisfies app.LayoutBackend, so an editing session can run remotely.
type LayoutClient struct {
	client  *clients.Client
	logger  *slog.Logger
	docOpts []layout.Option
}

// NewLayoutClient creates a new layout client.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewLayoutClient(cfg LayoutClientConfig) *LayoutClient {
	if cfg.Client == nil {
		panic("LayoutClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LayoutClient{
		client:  cfg.Client,
		logger:  logger.With(slog.String("component", "acl.LayoutClient")),
		docOpts: cfg.DocumentOptions,
	}
}

// layoutField is the body field of the layout endpoints: "layout" for a
// quotation, "template" for the global scope.
func layoutField(scope layout.Scope) string {
	if scope == layout.ScopeGlobal {
		return "template"
	}

	return "layout"
}

func layoutPath(key layout.Key) string {
	if key.Scope == layout.ScopeGlobal {
		return "/user-preferences/global-quotation-template"
	}

	return "/user-preferences/quotation-layout/" + url.PathEscape(key.QuotationID)
}

// LoadBlocks fetches the stored blocks. A missing layout is empty.
func (c *LayoutClient) LoadBlocks(ctx context.Context, key layout.Key) ([]layout.Block, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	path := layoutPath(key)
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return nil, statusError(resp, resource{"layout", key.String()})
	}

	var env map[string][]map[string]any
	if err := clients.DecodeJSON(resp, &env); err != nil {
		return nil, domain.NewUnavailableError(ServiceName, err.Error())
	}

	return layout.FromWire(env[layoutField(key.Scope)])
}

// Load fetches the stored layout as an editable document.
func (c *LayoutClient) Load(ctx context.Context, key layout.Key) (*layout.Document, error) {
	blocks, err := c.LoadBlocks(ctx, key)
	if err != nil {
		return nil, err
	}

	doc := layout.NewDocument(c.docOpts...)
	if err := doc.Replace(blocks); err != nil {
		return nil, err
	}

	return doc, nil
}

// Save replaces the stored layout.
func (c *LayoutClient) Save(ctx context.Context, key layout.Key, blocks []layout.Block) error {
	if err := key.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendJSON(clients.Idempotent(ctx), http.MethodPost, layoutPath(key), map[string]any{
		layoutField(key.Scope): layout.ToWire(blocks),
	})
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, resource{"layout", key.String()})
	}

	c.logger.DebugContext(ctx, "layout saved remotely",
		slog.String("key", key.String()),
		slog.Int("blocks", len(blocks)),
	)

	return nil
}

// Delete removes the stored layout. Deleting a missing layout succeeds.
func (c *LayoutClient) Delete(ctx context.Context, key layout.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	resp, err := c.client.Delete(ctx, layoutPath(key))
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	err = statusError(resp, resource{"layout", key.String()})
	if domain.IsNotFound(err) {
		return nil
	}

	return err
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *LayoutClient) Name() string {
	return ServiceName
}

// Check reads the global template to verify the API is reachable.
// Implements ports.HealthChecker.
func (c *LayoutClient) Check(ctx context.Context) error {
	_, err := c.LoadBlocks(ctx, layout.GlobalKey())
	if errors.Is(err, domain.ErrUnavailable) {
		return err
	}

	return nil
}
