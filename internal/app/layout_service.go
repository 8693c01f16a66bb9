package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// LayoutMetrics records designer activity. telemetry.DesignerMetrics
// implements it.
type LayoutMetrics interface {
	RecordSave(ctx context.Context, scope string, blocks int, err error)
	RecordLoad(ctx context.Context, scope string, found bool)
}

// ErrUnreadableLayout is returned when a stored layout no longer decodes.
var ErrUnreadableLayout = errors.New("stored layout is unreadable")

// LayoutService loads and saves designer layouts. Each key holds exactly
// one document and the last write wins.
type LayoutService struct {
	store   ports.LayoutStore
	metrics LayoutMetrics
	docOpts []layout.Option
	logger  *slog.Logger
}

// LayoutServiceConfig contains the dependencies of LayoutService.
type LayoutServiceConfig struct {
	Store   ports.LayoutStore
	Metrics LayoutMetrics
	// DocumentOptions are applied to every loaded document.
	DocumentOptions []layout.Option
	Logger          *slog.Logger
}

// NewLayoutService panics without a store.
func NewLayoutService(cfg LayoutServiceConfig) *LayoutService {
	if cfg.Store == nil {
		panic("app: LayoutService requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LayoutService{
		store:   cfg.Store,
		metrics: cfg.Metrics,
		docOpts: cfg.DocumentOptions,
		logger:  logger.With(slog.String("component", "app.LayoutService")),
	}
}

// LoadBlocks returns the stored blocks. A missing layout is empty, not an
// error.
func (s *LayoutService) LoadBlocks(ctx context.Context, key layout.Key) ([]layout.Block, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	data, ok, err := s.store.LoadLayout(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordLoad(ctx, string(key.Scope), ok)
	}

	if !ok {
		return []layout.Block{}, nil
	}

	blocks, err := layout.Decode(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored layout does not decode",
			slog.String("key", key.String()),
			slog.Any("error", err),
		)

		return nil, errors.Join(ErrUnreadableLayout, errors.New(err.Error()))
	}

	return blocks, nil
}

// Load returns the stored layout as an editable document.
func (s *LayoutService) Load(ctx context.Context, key layout.Key) (*layout.Document, error) {
	blocks, err := s.LoadBlocks(ctx, key)
	if err != nil {
		return nil, err
	}

	doc := layout.NewDocument(s.docOpts...)
	if err := doc.Replace(blocks); err != nil {
		return nil, errors.Join(ErrUnreadableLayout, errors.New(err.Error()))
	}

	return doc, nil
}

// Save replaces the layout stored under key.
func (s *LayoutService) Save(ctx context.Context, key layout.Key, blocks []layout.Block) error {
	if err := key.Validate(); err != nil {
		return err
	}

	data, err := layout.Encode(blocks)
	if err == nil {
		err = s.store.SaveLayout(ctx, key, data)
	}

	if s.metrics != nil {
		s.metrics.RecordSave(ctx, string(key.Scope), len(blocks), err)
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "layout save failed",
			slog.String("key", key.String()),
			slog.Any("error", err),
		)

		return err
	}

	s.logger.InfoContext(ctx, "layout saved",
		slog.String("key", key.String()),
		slog.Int("blocks", len(blocks)),
	)

	return nil
}

// SaveWire validates a layout in its JSON wire form, normalizes it and
// saves it. The normalized blocks are returned.
func (s *LayoutService) SaveWire(ctx context.Context, key layout.Key, raw []map[string]any) ([]layout.Block, error) {
	blocks, err := layout.FromWire(raw)
	if err != nil {
		return nil, err
	}

	if err := s.Save(ctx, key, blocks); err != nil {
		return nil, err
	}

	return blocks, nil
}

// Delete removes the layout. Deleting a missing layout succeeds.
func (s *LayoutService) Delete(ctx context.Context, key layout.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	if err := s.store.DeleteLayout(ctx, key); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "layout deleted", slog.String("key", key.String()))

	return nil
}
