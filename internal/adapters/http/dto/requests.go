package dto

import (
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// AddColumnRequest is the body of POST /<entity>/add-column.
type AddColumnRequest struct {
	ColumnName string `json:"column_name" validate:"required,notempty,column"`
	ColumnType string `json:"column_type" validate:"omitempty,coltype"`
}

// DeleteColumnRequest is the body of POST /<entity>/delete-column.
type DeleteColumnRequest struct {
	ColumnName string `json:"column_name" validate:"required,notempty"`
}

// RenameColumnRequest is the body of POST /<entity>/rename-column.
type RenameColumnRequest struct {
	OldName string `json:"old_name" validate:"required,notempty"`
	NewName string `json:"new_name" validate:"required,notempty,column"`
}

// UpdateFieldRequest is the body of PUT /<entity>/update-field. The row id
// may be sent as record_id or under the entity's own key.
type UpdateFieldRequest struct {
	RecordID    *int64 `json:"record_id,omitempty"`
	QuotationID *int64 `json:"quotation_id,omitempty"`
	ItemID      *int64 `json:"item_id,omitempty"`
	ChargeID    *int64 `json:"charge_id,omitempty"`
	ColumnName  string `json:"column_name" validate:"required,notempty"`
	Value       any    `json:"value"`
}

// RowID returns the addressed row id for entity.
func (r UpdateFieldRequest) RowID(entity domain.Entity) (int64, bool) {
	if r.RecordID != nil {
		return *r.RecordID, true
	}

	var id *int64

	switch entity {
	case domain.EntityQuotation:
		id = r.QuotationID
	case domain.EntityItems:
		id = r.ItemID
	case domain.EntityCharges:
		id = r.ChargeID
	}

	if id == nil {
		return 0, false
	}

	return *id, true
}

// CreateQuotationRequest is the body of POST /quotation-with-items.
type CreateQuotationRequest struct {
	QuotationData map[string]any   `json:"quotation_data" validate:"required"`
	ItemsData     []map[string]any `json:"items_data"`
}

// Items converts the item bodies to rows.
func (r CreateQuotationRequest) Items() []domain.Row {
	return toRows(r.ItemsData)
}

// UpdateQuotationRequest is the body of PUT /quotation-with-items/:id.
// Every section is optional.
type UpdateQuotationRequest struct {
	QuotationData map[string]any   `json:"quotation_data"`
	ItemsData     []map[string]any `json:"items_data"`
	ItemsToDelete []int64          `json:"items_to_delete" validate:"omitempty,dive,gt=0"`
}

// Validate rejects a body with nothing to do.
func (r UpdateQuotationRequest) Validate() error {
	if r.QuotationData == nil && r.ItemsData == nil && r.ItemsToDelete == nil {
		return domain.NewValidationError("quotation_data", "at least one of quotation_data, items_data or items_to_delete is required")
	}

	return nil
}

// Items converts the item bodies to rows.
func (r UpdateQuotationRequest) Items() []domain.Row {
	return toRows(r.ItemsData)
}

// ColumnOrderRequest is the body of POST /user-preferences/column-order.
type ColumnOrderRequest struct {
	ColumnOrder []string `json:"column_order" validate:"required"`
}

// LayoutRequest is the body of POST /user-preferences/quotation-layout/:id.
type LayoutRequest struct {
	Layout []map[string]any `json:"layout" validate:"required"`
}

// TemplateRequest is the body of POST /user-preferences/global-quotation-template.
type TemplateRequest struct {
	Template []map[string]any `json:"template" validate:"required"`
}

// PreviewQuery holds the query string of GET /designer/preview/:quotationId.
type PreviewQuery struct {
	Scope string `form:"scope" validate:"omitempty,scope"`
}

func toRows(in []map[string]any) []domain.Row {
	if in == nil {
		return nil
	}

	rows := make([]domain.Row, len(in))
	for i, m := range in {
		rows[i] = domain.Row(m)
	}

	return rows
}
