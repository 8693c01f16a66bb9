package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// fakeLayouts keeps layouts in memory keyed by layout key.
type fakeLayouts struct {
	stored  map[string][]layout.Block
	saveErr error
	deleted []string
}

func newFakeLayouts() *fakeLayouts {
	return &fakeLayouts{stored: map[string][]layout.Block{}}
}

func (f *fakeLayouts) Load(_ context.Context, key layout.Key) (*layout.Document, error) {
	doc := layout.NewDocument()
	if err := doc.Replace(f.stored[key.String()]); err != nil {
		return nil, err
	}

	return doc, nil
}

func (f *fakeLayouts) Save(_ context.Context, key layout.Key, blocks []layout.Block) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.stored[key.String()] = blocks

	return nil
}

func (f *fakeLayouts) Delete(_ context.Context, key layout.Key) error {
	f.deleted = append(f.deleted, key.String())
	delete(f.stored, key.String())

	return nil
}

// fakeQuotations serves one quotation with id 5.
type fakeQuotations struct {
	templateCalls []int64
}

var acme = acl.Quotation{
	Quotation: domain.Row{"id": int64(5), "customer_name": "Acme Labs", "enquiry_ref": "ENQ-7"},
	Items: []domain.Row{
		{"id": int64(1), "sample_activity": "Soil test", "qty": "2", "unit_rate": "100", "total_cost": "200.00"},
	},
	Total: "200.00",
}

func (f *fakeQuotations) List(context.Context) ([]acl.Quotation, error) {
	return []acl.Quotation{acme}, nil
}

func (f *fakeQuotations) Get(_ context.Context, id int64) (acl.Quotation, error) {
	if id != 5 {
		return acl.Quotation{}, domain.NewNotFoundError("quotation", "9")
	}

	return acme, nil
}

func (f *fakeQuotations) Templates(_ context.Context, id int64) ([]layout.BlockTemplate, error) {
	f.templateCalls = append(f.templateCalls, id)

	if id == 0 {
		return layout.SpecialTemplates(), nil
	}

	return layout.BuildTemplates(acme.Quotation), nil
}

func (f *fakeQuotations) Preview(_ context.Context, _ int64, scope layout.Scope) ([]layout.PreviewBlock, error) {
	if scope == layout.ScopeGlobal {
		return nil, nil
	}

	return []layout.PreviewBlock{
		{Block: map[string]any{layout.KeyType: "header", layout.PropValue: "QUOTATION"}},
		{Block: map[string]any{layout.KeyType: "table"}, Rows: []layout.PreviewRow{{SlNo: 1, Description: "Soil test", Qty: "2", UnitRate: "100", TotalCost: "200.00"}}},
		{Block: map[string]any{layout.KeyType: "total", layout.PropLabel: "Total Cost"}, Total: "200.00"},
	}, nil
}

type harness struct {
	cli        *CLI
	out        *bytes.Buffer
	layouts    *fakeLayouts
	quotations *fakeQuotations
}

func newHarness() *harness {
	out := &bytes.Buffer{}
	c := New(out, io.Discard, LogInfo)

	h := &harness{cli: c, out: out, layouts: newFakeLayouts(), quotations: &fakeQuotations{}}
	c.Layouts = h.layouts
	c.Quotations = h.quotations

	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()

	return h.cli.Execute(context.Background(), args)
}

func (h *harness) blocks(key layout.Key) []layout.Block {
	return h.layouts.stored[key.String()]
}

var quotation5 = layout.QuotationKey("5")

func TestTemplates(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		absent   []string
	}{
		{
			name:     "specials only without an id",
			args:     []string{"templates"},
			contains: []string{layout.TemplateHeader, layout.TemplateTable, layout.TemplateImage},
			absent:   []string{"quotation-customer_name"},
		},
		{
			name:     "quotation fields first",
			args:     []string{"templates", "5"},
			contains: []string{"quotation-customer_name", "Customer Name", layout.TemplateTotal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()

			require.NoError(t, h.run(t, tt.args...))

			for _, s := range tt.contains {
				assert.Contains(t, h.out.String(), s)
			}

			for _, s := range tt.absent {
				assert.NotContains(t, h.out.String(), s)
			}
		})
	}
}

func TestQuotations(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "quotations", "list"))
	assert.Contains(t, h.out.String(), "Acme Labs")
	assert.Contains(t, h.out.String(), "200.00")

	require.NoError(t, h.run(t, "q", "show", "5"))
	assert.Contains(t, h.out.String(), "Quotation 5")
	assert.Contains(t, h.out.String(), "Soil test")

	err := h.run(t, "quotations", "show", "9")
	assert.True(t, domain.IsNotFound(err))
}

func TestPreview(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "preview", "5"))
	assert.Contains(t, h.out.String(), "QUOTATION")
	assert.Contains(t, h.out.String(), "Soil test")
	assert.Contains(t, h.out.String(), "Total Cost")

	require.NoError(t, h.run(t, "preview", "5", "--scope", "global"))
	assert.Contains(t, h.out.String(), "layout is empty")

	err := h.run(t, "preview", "5", "--scope", "everywhere")
	assert.True(t, domain.IsValidation(err))
}

func TestLayoutEditing(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "layout", "add", "5", layout.TemplateHeader))
	require.NoError(t, h.run(t, "layout", "add", "5", "quotation-customer_name"))
	require.NoError(t, h.run(t, "layout", "add", "5", layout.TemplateDivider, "--at", "0"))

	blocks := h.blocks(quotation5)
	require.Len(t, blocks, 3)
	assert.Equal(t, layout.KindDivider, blocks[0].Kind)
	assert.Equal(t, layout.KindHeader, blocks[1].Kind)
	assert.Equal(t, layout.KindField, blocks[2].Kind)
	assert.Equal(t, []int64{5, 5, 5}, h.quotations.templateCalls)

	header := blocks[1].InstanceID

	require.NoError(t, h.run(t, "layout", "set", "5", header, layout.PropValue, "QUOTATION"))
	assert.Equal(t, "QUOTATION", h.blocks(quotation5)[1].Props.Fields()[layout.PropValue])

	require.NoError(t, h.run(t, "layout", "move", "5", header, "0"))
	assert.Equal(t, header, h.blocks(quotation5)[0].InstanceID)

	require.NoError(t, h.run(t, "layout", "show", "5"))
	assert.Contains(t, h.out.String(), header)
	assert.Contains(t, h.out.String(), "Customer Name")

	require.NoError(t, h.run(t, "layout", "remove", "5", header))
	assert.Len(t, h.blocks(quotation5), 2)
}

func TestLayoutNothingChanged(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "layout", "remove", "5", "no-such-block"))
	assert.Contains(t, h.out.String(), "nothing changed")
	assert.NotContains(t, h.layouts.stored, quotation5.String())
}

func TestLayoutGlobal(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "layout", "--global", "add", layout.TemplateTotal))

	assert.Len(t, h.blocks(layout.GlobalKey()), 1)
	assert.Equal(t, []int64{0}, h.quotations.templateCalls)

	err := h.run(t, "layout", "--global", "add", "quotation-customer_name")
	assert.True(t, domain.IsNotFound(err), "field templates are not offered globally")

	require.NoError(t, h.run(t, "layout", "clear", "--global"))
	assert.Equal(t, []string{layout.GlobalKey().String()}, h.layouts.deleted)
}

func TestLayoutInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non numeric id", []string{"layout", "show", "abc"}},
		{"zero id", []string{"layout", "add", "0", layout.TemplateHeader}},
		{"non numeric index", []string{"layout", "move", "5", "block-1", "first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()

			err := h.run(t, tt.args...)

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, h.out.String(), iconError)
		})
	}
}

func TestLayoutArgumentCount(t *testing.T) {
	h := newHarness()

	assert.Error(t, h.run(t, "layout", "add", layout.TemplateHeader))
	assert.Error(t, h.run(t, "layout", "--global", "add", "5", layout.TemplateHeader))
}

func TestLayoutImage(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(png, append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...), 0o600))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not an image"), 0o600))

	h := newHarness()
	require.NoError(t, h.run(t, "layout", "add", "5", layout.TemplateImage))
	id := h.blocks(quotation5)[0].InstanceID

	require.NoError(t, h.run(t, "layout", "image", "5", id, png))

	img, ok := h.blocks(quotation5)[0].Image()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(img.Value, "data:image/png;base64,"), img.Value)

	err := h.run(t, "layout", "image", "5", id, txt)
	assert.True(t, domain.IsValidation(err))

	err = h.run(t, "layout", "image", "5", id, filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestLayoutSaveFailure(t *testing.T) {
	h := newHarness()
	h.layouts.saveErr = errors.New("connection refused")

	err := h.run(t, "layout", "add", "5", layout.TemplateHeader)

	require.Error(t, err)
	assert.Contains(t, h.out.String(), "edit not saved")
}

func TestConnectFromConfig(t *testing.T) {
	c := New(io.Discard, io.Discard, LogInfo)
	c.configDir = t.TempDir()

	require.NoError(t, c.connect())
	assert.NotNil(t, c.Layouts)
	assert.NotNil(t, c.Quotations)
}
