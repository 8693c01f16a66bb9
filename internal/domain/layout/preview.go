package layout

import (
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

const missingCell = "-"

// PreviewRow is one line of the rendered items table.
type PreviewRow struct {
	SlNo        int    `json:"sl_no"`
	Description string `json:"description"`
	Qty         string `json:"qty"`
	UnitRate    string `json:"unit_rate"`
	TotalCost   string `json:"total_cost"`
}

// PreviewBlock is a block ready for printing. Table and total blocks carry
// their content resolved from the quotation's items.
type PreviewBlock struct {
	Block map[string]any `json:"block"`
	Rows  []PreviewRow   `json:"rows,omitempty"`
	Total string         `json:"total,omitempty"`
}

// Render resolves table rows and totals against items. Stored field values
// are shown as snapshotted; they are not re-read from the quotation.
func Render(blocks []Block, items []domain.Row) []PreviewBlock {
	out := make([]PreviewBlock, 0, len(blocks))

	var rows []PreviewRow

	total := domain.FormatAmount(domain.ItemsTotal(items))

	for _, b := range blocks {
		pb := PreviewBlock{Block: WireBlock(b)}

		switch b.Kind {
		case KindTable:
			if rows == nil {
				rows = PreviewRows(items)
			}
			pb.Rows = rows
		case KindTotal:
			pb.Total = total
		}

		out = append(out, pb)
	}

	return out
}

// PreviewRows builds the printed items table.
func PreviewRows(items []domain.Row) []PreviewRow {
	rows := make([]PreviewRow, len(items))

	for i, item := range items {
		rows[i] = PreviewRow{
			SlNo:        i + 1,
			Description: firstNonEmpty(item["sample_activity"], item["description"]),
			Qty:         firstNonEmpty(item["qty"]),
			UnitRate:    amount(item["unit_rate"]),
			TotalCost:   amount(item["total_cost"]),
		}
	}

	return rows
}

func firstNonEmpty(values ...any) string {
	for _, v := range values {
		if s := toString(v); s != "" {
			return s
		}
	}

	return missingCell
}

func amount(v any) string {
	f, ok := domain.ToFloat(v)
	if !ok {
		f = 0
	}

	return domain.FormatAmount(f)
}
