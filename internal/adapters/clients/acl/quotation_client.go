package acl

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// QuotationClientConfig contains configuration for the quotation client.
type QuotationClientConfig struct {
	// Client's BaseURL must include the server's API prefix, if it sets one.
	Client *clients.Client

	Logger *slog.Logger
}

// QuotationClient reads quotations and designer helpers from the API.
type QuotationClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewQuotationClient creates a new quotation client.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuotationClient(cfg QuotationClientConfig) *QuotationClient {
	if cfg.Client == nil {
		panic("QuotationClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuotationClient{
		client: cfg.Client,
		logger: logger.With(slog.String("component", "acl.QuotationClient")),
	}
}

// Quotation is a quotation header with its items and formatted total, as
// returned by GET /quotation-with-items.
type Quotation struct {
	Quotation domain.Row   `json:"quotation"`
	Items     []domain.Row `json:"items"`
	Total     string       `json:"total"`
}

// ID returns the quotation's id.
func (q Quotation) ID() int64 {
	return q.Quotation.ID()
}

// List returns every quotation with its items.
func (c *QuotationClient) List(ctx context.Context) ([]Quotation, error) {
	var out []Quotation
	if err := c.get(ctx, "/quotation-with-items", "quotation", "", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Get returns one quotation with its items.
func (c *QuotationClient) Get(ctx context.Context, id int64) (Quotation, error) {
	sid := strconv.FormatInt(id, 10)

	var out Quotation
	if err := c.get(ctx, "/quotation-with-items/"+sid, "quotation", sid, &out); err != nil {
		return Quotation{}, err
	}

	return out, nil
}

// Templates returns the block palette for a quotation. An id of 0 returns
// only the special blocks.
func (c *QuotationClient) Templates(ctx context.Context, id int64) ([]layout.BlockTemplate, error) {
	sid := strconv.FormatInt(id, 10)

	var out struct {
		Templates []layout.BlockTemplate `json:"templates"`
	}
	if err := c.get(ctx, "/designer/templates/"+sid, "quotation", sid, &out); err != nil {
		return nil, err
	}

	return out.Templates, nil
}

// Preview returns the layout addressed by scope rendered against the
// quotation's items.
func (c *QuotationClient) Preview(ctx context.Context, id int64, scope layout.Scope) ([]layout.PreviewBlock, error) {
	sid := strconv.FormatInt(id, 10)
	path := "/designer/preview/" + sid + "?scope=" + url.QueryEscape(string(scope))

	var out struct {
		Blocks []layout.PreviewBlock `json:"blocks"`
	}
	if err := c.get(ctx, path, "quotation", sid, &out); err != nil {
		return nil, err
	}

	return out.Blocks, nil
}

func (c *QuotationClient) get(ctx context.Context, path, entity, id string, out any) error {
	c.logger.DebugContext(ctx, "fetching", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return statusError(resp, resource{entity, id})
	}

	if err := clients.DecodeJSON(resp, out); err != nil {
		return domain.NewUnavailableError(ServiceName, err.Error())
	}

	return nil
}
