package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// DefaultUserID owns every preference; there is no authentication.
const DefaultUserID = "default"

// PreferenceColumnOrder is the preference holding the table column order.
const PreferenceColumnOrder = "column_order"

// PreferenceService reads and writes user preferences.
type PreferenceService struct {
	store  ports.PreferenceStore
	logger *slog.Logger
}

// PreferenceServiceConfig contains the dependencies of PreferenceService.
type PreferenceServiceConfig struct {
	Store  ports.PreferenceStore
	Logger *slog.Logger
}

// NewPreferenceService panics without a store.
func NewPreferenceService(cfg PreferenceServiceConfig) *PreferenceService {
	if cfg.Store == nil {
		panic("app: PreferenceService requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PreferenceService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.PreferenceService")),
	}
}

// ColumnOrder returns the saved column order, or an empty list.
func (s *PreferenceService) ColumnOrder(ctx context.Context) ([]string, error) {
	data, ok, err := s.store.GetPreference(ctx, DefaultUserID, PreferenceColumnOrder)
	if err != nil {
		return nil, err
	}

	order := []string{}
	if !ok || len(data) == 0 {
		return order, nil
	}

	if err := json.Unmarshal(data, &order); err != nil {
		// An unreadable value reads as no preference.
		s.logger.WarnContext(ctx, "ignoring unreadable column order", slog.Any("error", err))
		return []string{}, nil
	}

	return order, nil
}

// SaveColumnOrder stores order after dropping blanks and repeats, and
// returns what was saved.
func (s *PreferenceService) SaveColumnOrder(ctx context.Context, order []string) ([]string, error) {
	if order == nil {
		return nil, domain.NewValidationError("column_order", "is required")
	}

	seen := make(map[string]struct{}, len(order))
	clean := make([]string, 0, len(order))

	for _, name := range order {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}
		clean = append(clean, name)
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("encode column order: %w", err)
	}

	if err := s.store.SetPreference(ctx, DefaultUserID, PreferenceColumnOrder, data); err != nil {
		return nil, err
	}

	return clean, nil
}

// ApplyColumnOrder returns columns with the names in order first (names no
// longer present are skipped), followed by the rest in schema order.
func ApplyColumnOrder(columns []domain.Column, order []string) []domain.Column {
	byName := make(map[string]domain.Column, len(columns))
	for _, c := range columns {
		byName[c.Name] = c
	}

	out := make([]domain.Column, 0, len(columns))
	placed := make(map[string]struct{}, len(columns))

	for _, name := range order {
		c, ok := byName[name]
		if !ok {
			continue
		}

		if _, done := placed[name]; done {
			continue
		}

		placed[name] = struct{}{}
		out = append(out, c)
	}

	for _, c := range columns {
		if _, done := placed[c.Name]; !done {
			out = append(out, c)
		}
	}

	return out
}
