package app

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// DesignerService serves the read side of the layout designer: the block
// palette for a quotation and rendered previews.
type DesignerService struct {
	quotations *QuotationService
	layouts    *LayoutService
	logger     *slog.Logger
}

// DesignerServiceConfig contains the dependencies of DesignerService.
type DesignerServiceConfig struct {
	Quotations *QuotationService
	Layouts    *LayoutService
	Logger     *slog.Logger
}

// NewDesignerService panics without its collaborators.
func NewDesignerService(cfg DesignerServiceConfig) *DesignerService {
	if cfg.Quotations == nil || cfg.Layouts == nil {
		panic("app: DesignerService requires Quotations and Layouts")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DesignerService{
		quotations: cfg.Quotations,
		layouts:    cfg.Layouts,
		logger:     logger.With(slog.String("component", "app.DesignerService")),
	}
}

// Templates returns the palette for a quotation: one field template per
// quotation column followed by the special blocks. A zero id yields only
// the specials.
func (s *DesignerService) Templates(ctx context.Context, quotationID int64) ([]layout.BlockTemplate, error) {
	if quotationID == 0 {
		return layout.SpecialTemplates(), nil
	}

	q, err := s.quotations.store.GetRow(ctx, domain.EntityQuotation, quotationID)
	if err != nil {
		return nil, err
	}

	return layout.BuildTemplates(q), nil
}

// Preview renders the layout addressed by scope against the quotation's
// current items. The items and the layout are loaded concurrently.
func (s *DesignerService) Preview(ctx context.Context, quotationID int64, scope layout.Scope) ([]layout.PreviewBlock, error) {
	key := layout.GlobalKey()
	if scope == layout.ScopeQuotation {
		key = layout.QuotationKey(strconv.FormatInt(quotationID, 10))
	}

	q, blocks, err := fetchBoth(ctx,
		func(ctx context.Context) (QuotationWithItems, error) {
			return s.quotations.Get(ctx, quotationID)
		},
		func(ctx context.Context) ([]layout.Block, error) {
			return s.layouts.LoadBlocks(ctx, key)
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "rendering preview",
		slog.Int64("quotation_id", quotationID),
		slog.String("key", key.String()),
		slog.Int("blocks", len(blocks)),
		slog.Int("items", len(q.Items)),
	)

	return layout.Render(blocks, q.Items), nil
}

// Properties lists the controls the editor shows for a block kind.
func Properties(kind string) ([]layout.PropertySpec, error) {
	k, err := layout.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	return layout.EditableProperties(k), nil
}
