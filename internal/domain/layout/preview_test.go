package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

func TestPreviewRows(t *testing.T) {
	items := []domain.Row{
		{"sample_activity": "Soil testing", "qty": "2", "unit_rate": "1500", "total_cost": "3000"},
		{"description": "Site visit", "qty": nil, "unit_rate": 750.5, "total_cost": float64(750.5)},
		{"sample_activity": "", "unit_rate": "n/a"},
	}

	rows := PreviewRows(items)
	require.Len(t, rows, 3)

	assert.Equal(t, PreviewRow{SlNo: 1, Description: "Soil testing", Qty: "2", UnitRate: "1500.00", TotalCost: "3000.00"}, rows[0])
	assert.Equal(t, PreviewRow{SlNo: 2, Description: "Site visit", Qty: "-", UnitRate: "750.50", TotalCost: "750.50"}, rows[1])
	assert.Equal(t, PreviewRow{SlNo: 3, Description: "-", Qty: "-", UnitRate: "0.00", TotalCost: "0.00"}, rows[2])
}

func TestRender(t *testing.T) {
	doc := NewDocument(WithIDGenerator(seqIDs()))
	doc.InsertFromTemplate(template(t, TemplateHeader), nil)
	doc.InsertFromTemplate(template(t, TemplateTable), nil)
	doc.InsertFromTemplate(template(t, TemplateTotal), nil)

	items := []domain.Row{
		{"sample_activity": "A", "total_cost": "100.25"},
		{"sample_activity": "B", "total_cost": "n/a"},
		{"sample_activity": "C", "total_cost": 20},
	}

	out := Render(doc.Blocks(), items)
	require.Len(t, out, 3)

	assert.Equal(t, "canvas-1", out[0].Block["canvasId"])
	assert.Empty(t, out[0].Rows)
	assert.Empty(t, out[0].Total)

	assert.Len(t, out[1].Rows, 3)
	assert.Equal(t, "120.25", out[2].Total)
}

func TestRender_NoItems(t *testing.T) {
	doc := NewDocument()
	doc.InsertFromTemplate(template(t, TemplateTotal), nil)

	out := Render(doc.Blocks(), nil)
	require.Len(t, out, 1)
	assert.Equal(t, "0.00", out[0].Total)
}
