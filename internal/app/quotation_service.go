package app

import (
	"context"
	"log/slog"
	"maps"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// Update sections reported by QuotationService.Update.
const (
	SectionQuotationData = "quotation_data"
	SectionDeletedItems  = "deleted_items"
	SectionUpdatedItems  = "updated_items"
	SectionCreatedItems  = "created_items"
)

// QuotationWithItems is a quotation header with its line items.
type QuotationWithItems struct {
	Quotation domain.Row   `json:"quotation"`
	Items     []domain.Row `json:"items"`
}

// Total sums the items' total_cost.
func (q QuotationWithItems) Total() float64 {
	return domain.ItemsTotal(q.Items)
}

// CreateResult is returned by QuotationService.Create.
type CreateResult struct {
	QuotationID int64   `json:"quotation_id"`
	ItemIDs     []int64 `json:"item_ids"`
}

// UpdateRequest describes a partial update. Nil sections are left alone.
// Items carrying an id are updated, items without one are created.
type UpdateRequest struct {
	QuotationData domain.Row
	ItemsData     []domain.Row
	ItemsToDelete []int64
}

// UpdateResult lists what an update touched.
type UpdateResult struct {
	QuotationID     int64    `json:"quotation_id"`
	UpdatedSections []string `json:"updated_sections"`
	UpdatedItemIDs  []int64  `json:"updated_item_ids"`
	CreatedItemIDs  []int64  `json:"created_item_ids"`
	DeletedItemIDs  []int64  `json:"deleted_item_ids"`
}

// QuotationService manages quotations together with their items. Every
// write runs in one transaction.
type QuotationService struct {
	store  ports.TxTableStore
	logger *slog.Logger
}

// QuotationServiceConfig contains the dependencies of QuotationService.
type QuotationServiceConfig struct {
	Store  ports.TxTableStore
	Logger *slog.Logger
}

// NewQuotationService panics without a store.
func NewQuotationService(cfg QuotationServiceConfig) *QuotationService {
	if cfg.Store == nil {
		panic("app: QuotationService requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuotationService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.QuotationService")),
	}
}

// Create inserts a quotation and its items atomically.
func (s *QuotationService) Create(ctx context.Context, quotation domain.Row, items []domain.Row) (CreateResult, error) {
	var res CreateResult

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.TableStore) error {
		id, err := tx.CreateRow(ctx, domain.EntityQuotation, withoutID(quotation))
		if err != nil {
			return err
		}

		res = CreateResult{QuotationID: id, ItemIDs: make([]int64, 0, len(items))}

		for _, item := range items {
			itemID, err := tx.CreateRow(ctx, domain.EntityItems, itemFor(id, item))
			if err != nil {
				return err
			}

			res.ItemIDs = append(res.ItemIDs, itemID)
		}

		return nil
	})
	if err != nil {
		return CreateResult{}, err
	}

	s.logger.InfoContext(ctx, "quotation created",
		slog.Int64("quotation_id", res.QuotationID),
		slog.Int("items", len(res.ItemIDs)),
	)

	return res, nil
}

// Get returns one quotation with its items or NotFound.
func (s *QuotationService) Get(ctx context.Context, id int64) (QuotationWithItems, error) {
	q, err := s.store.GetRow(ctx, domain.EntityQuotation, id)
	if err != nil {
		return QuotationWithItems{}, err
	}

	items, err := s.store.FindRows(ctx, domain.EntityItems, "quotation_id", id)
	if err != nil {
		return QuotationWithItems{}, err
	}

	return QuotationWithItems{Quotation: q, Items: items}, nil
}

// List returns every quotation with its items. Both tables are read
// concurrently and joined in memory.
func (s *QuotationService) List(ctx context.Context) ([]QuotationWithItems, error) {
	quotations, items, err := fetchBoth(ctx,
		func(ctx context.Context) ([]domain.Row, error) {
			return s.store.ListRows(ctx, domain.EntityQuotation)
		},
		func(ctx context.Context) ([]domain.Row, error) {
			return s.store.ListRows(ctx, domain.EntityItems)
		},
	)
	if err != nil {
		return nil, err
	}

	byQuotation := make(map[int64][]domain.Row, len(quotations))
	for _, item := range items {
		qid, _ := domain.ToInt64(item["quotation_id"])
		byQuotation[qid] = append(byQuotation[qid], item)
	}

	out := make([]QuotationWithItems, 0, len(quotations))
	for _, q := range quotations {
		its := byQuotation[q.ID()]
		if its == nil {
			its = []domain.Row{}
		}

		out = append(out, QuotationWithItems{Quotation: q, Items: its})
	}

	return out, nil
}

// Delete removes a quotation and its items and returns how many items went
// with it.
func (s *QuotationService) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.TableStore) error {
		if _, err := tx.GetRow(ctx, domain.EntityQuotation, id); err != nil {
			return err
		}

		n, err := tx.DeleteRows(ctx, domain.EntityItems, "quotation_id", id)
		if err != nil {
			return err
		}

		deleted = n

		return tx.DeleteRow(ctx, domain.EntityQuotation, id)
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "quotation deleted",
		slog.Int64("quotation_id", id),
		slog.Int64("items_deleted", deleted),
	)

	return deleted, nil
}

// Update applies req to quotation id. Items that do not belong to the
// quotation are skipped rather than rejected.
func (s *QuotationService) Update(ctx context.Context, id int64, req UpdateRequest) (UpdateResult, error) {
	res := UpdateResult{
		QuotationID:     id,
		UpdatedSections: []string{},
		UpdatedItemIDs:  []int64{},
		CreatedItemIDs:  []int64{},
		DeletedItemIDs:  []int64{},
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.TableStore) error {
		if _, err := tx.GetRow(ctx, domain.EntityQuotation, id); err != nil {
			return err
		}

		if len(req.QuotationData) > 0 {
			if err := tx.UpdateRow(ctx, domain.EntityQuotation, id, withoutID(req.QuotationData)); err != nil {
				return err
			}

			res.UpdatedSections = append(res.UpdatedSections, SectionQuotationData)
		}

		for _, itemID := range req.ItemsToDelete {
			ok, err := belongsTo(ctx, tx, itemID, id)
			if err != nil {
				return err
			}

			if !ok {
				continue
			}

			if err := tx.DeleteRow(ctx, domain.EntityItems, itemID); err != nil {
				return err
			}

			res.DeletedItemIDs = append(res.DeletedItemIDs, itemID)
		}

		if len(res.DeletedItemIDs) > 0 {
			res.UpdatedSections = append(res.UpdatedSections, SectionDeletedItems)
		}

		for _, item := range req.ItemsData {
			itemID, hasID := domain.ToInt64(item[domain.IDColumn])
			if !hasID || itemID == 0 {
				newID, err := tx.CreateRow(ctx, domain.EntityItems, itemFor(id, item))
				if err != nil {
					return err
				}

				res.CreatedItemIDs = append(res.CreatedItemIDs, newID)

				continue
			}

			ok, err := belongsTo(ctx, tx, itemID, id)
			if err != nil {
				return err
			}

			if !ok {
				continue
			}

			changes := withoutID(item)
			delete(changes, "quotation_id")

			if err := tx.UpdateRow(ctx, domain.EntityItems, itemID, changes); err != nil {
				return err
			}

			res.UpdatedItemIDs = append(res.UpdatedItemIDs, itemID)
		}

		if len(res.UpdatedItemIDs) > 0 {
			res.UpdatedSections = append(res.UpdatedSections, SectionUpdatedItems)
		}

		if len(res.CreatedItemIDs) > 0 {
			res.UpdatedSections = append(res.UpdatedSections, SectionCreatedItems)
		}

		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}

	s.logger.InfoContext(ctx, "quotation updated",
		slog.Int64("quotation_id", id),
		slog.Any("sections", res.UpdatedSections),
	)

	return res, nil
}

func belongsTo(ctx context.Context, tx ports.TableStore, itemID, quotationID int64) (bool, error) {
	item, err := tx.GetRow(ctx, domain.EntityItems, itemID)
	if domain.IsNotFound(err) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	qid, ok := domain.ToInt64(item["quotation_id"])

	return ok && qid == quotationID, nil
}

func withoutID(row domain.Row) domain.Row {
	out := make(domain.Row, len(row))
	maps.Copy(out, row)
	delete(out, domain.IDColumn)

	return out
}

// itemFor prepares a new item row bound to quotationID.
func itemFor(quotationID int64, item domain.Row) domain.Row {
	row := withoutID(item)
	row["quotation_id"] = quotationID
	domain.FillLineTotal(row)

	return row
}
