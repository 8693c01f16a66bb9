// Package app contains the application services. They orchestrate use cases
// over the ports and hold no HTTP or SQL specifics.
package app

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// TableService manages the columns and rows of one entity table at a time.
type TableService struct {
	store  ports.TableStore
	logger *slog.Logger
}

// TableServiceConfig contains the dependencies of TableService.
type TableServiceConfig struct {
	Store  ports.TableStore
	Logger *slog.Logger
}

// NewTableService panics without a store.
func NewTableService(cfg TableServiceConfig) *TableService {
	if cfg.Store == nil {
		panic("app: TableService requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TableService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.TableService")),
	}
}

// Columns returns the entity's columns in schema order.
func (s *TableService) Columns(ctx context.Context, entity domain.Entity) ([]domain.Column, error) {
	return s.store.Columns(ctx, entity)
}

// AddColumn adds a column. typeName accepts the aliases of
// domain.ParseColumnType; empty means string.
func (s *TableService) AddColumn(ctx context.Context, entity domain.Entity, name, typeName string) (domain.Column, error) {
	typ, err := domain.ParseColumnType(typeName)
	if err != nil {
		return domain.Column{}, err
	}

	col, err := s.store.AddColumn(ctx, entity, name, typ)
	if err != nil {
		s.logger.WarnContext(ctx, "add column failed",
			slog.String("entity", string(entity)),
			slog.String("column", name),
			slog.Any("error", err),
		)

		return domain.Column{}, err
	}

	return col, nil
}

// DeleteColumn drops a column that is not in the entity's required set.
func (s *TableService) DeleteColumn(ctx context.Context, entity domain.Entity, name string) error {
	return s.store.DeleteColumn(ctx, entity, name)
}

// RenameColumn renames a column that is not in the entity's required set.
func (s *TableService) RenameColumn(ctx context.Context, entity domain.Entity, oldName, newName string) error {
	return s.store.RenameColumn(ctx, entity, oldName, newName)
}

// ListRows returns every row of the entity.
func (s *TableService) ListRows(ctx context.Context, entity domain.Entity) ([]domain.Row, error) {
	return s.store.ListRows(ctx, entity)
}

// GetRow returns one row.
func (s *TableService) GetRow(ctx context.Context, entity domain.Entity, id int64) (domain.Row, error) {
	return s.store.GetRow(ctx, entity, id)
}

// CreateRow inserts a row. Items must reference an existing quotation and
// get total_cost filled from qty and unit_rate when it is missing.
func (s *TableService) CreateRow(ctx context.Context, entity domain.Entity, data domain.Row) (int64, error) {
	if data == nil {
		data = domain.Row{}
	}

	if entity == domain.EntityItems {
		if qid, ok := domain.ToInt64(data["quotation_id"]); ok && qid != 0 {
			if _, err := s.store.GetRow(ctx, domain.EntityQuotation, qid); err != nil {
				return 0, err
			}
		}

		domain.FillLineTotal(data)
	}

	id, err := s.store.CreateRow(ctx, entity, data)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "row created",
		slog.String("entity", string(entity)),
		slog.Int64("id", id),
	)

	return id, nil
}

// UpdateField sets one cell.
func (s *TableService) UpdateField(ctx context.Context, entity domain.Entity, id int64, column string, value any) error {
	if id <= 0 {
		return domain.NewValidationError(entity.IDField(), "must be a positive integer")
	}

	return s.store.UpdateField(ctx, entity, id, column, value)
}

// DeleteRow removes one row.
func (s *TableService) DeleteRow(ctx context.Context, entity domain.Entity, id int64) error {
	if err := s.store.DeleteRow(ctx, entity, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "row deleted",
		slog.String("entity", string(entity)),
		slog.String("id", strconv.FormatInt(id, 10)),
	)

	return nil
}
