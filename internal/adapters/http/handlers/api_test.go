package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/mocks"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

type apiDeps struct {
	tables  *mocks.MockTxTableStore
	layouts *mocks.MockLayoutStore
	prefs   *mocks.MockPreferenceStore
}

// newAPI wires every business handler over mocked stores.
func newAPI(t *testing.T) (*gin.Engine, apiDeps) {
	t.Helper()

	d := apiDeps{
		tables:  mocks.NewMockTxTableStore(t),
		layouts: mocks.NewMockLayoutStore(t),
		prefs:   mocks.NewMockPreferenceStore(t),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tables := app.NewTableService(app.TableServiceConfig{Store: d.tables, Logger: logger})
	quotations := app.NewQuotationService(app.QuotationServiceConfig{Store: d.tables, Logger: logger})
	prefs := app.NewPreferenceService(app.PreferenceServiceConfig{Store: d.prefs, Logger: logger})
	layouts := app.NewLayoutService(app.LayoutServiceConfig{Store: d.layouts, Logger: logger})
	designer := app.NewDesignerService(app.DesignerServiceConfig{
		Quotations: quotations,
		Layouts:    layouts,
		Logger:     logger,
	})

	engine := gin.New()
	rg := engine.Group("/api/v1")

	for _, e := range domain.Entities {
		NewTableHandler(e, tables, prefs).RegisterTableRoutes(rg)
	}

	NewQuotationHandler(quotations).RegisterQuotationRoutes(rg)
	NewPreferenceHandler(prefs, layouts).RegisterPreferenceRoutes(rg)
	NewDesignerHandler(designer).RegisterDesignerRoutes(rg)

	return engine, d
}

func serve(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, r)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}

	return w, out
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()

	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope, got %v", body)

	return e["code"].(string)
}

func passTx(store *mocks.MockTxTableStore) {
	store.EXPECT().WithinTx(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context, ports.TableStore) error) error {
			return fn(ctx, store)
		})
}

// --- tables ---

func TestTableHandler_Columns(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().Columns(mock.Anything, domain.EntityCharges).Return([]domain.Column{
		{Name: "id", Type: domain.ColumnInteger},
		{Name: "name", Type: domain.ColumnString},
	}, nil)

	w, body := serve(t, engine, http.MethodGet, "/charges/columns", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{
		map[string]any{"column_name": "id", "data_type": "integer"},
		map[string]any{"column_name": "name", "data_type": "string"},
	}, body["columns"])
}

func TestTableHandler_ColumnsOrdered(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().Columns(mock.Anything, domain.EntityQuotation).Return([]domain.Column{
		{Name: "id"}, {Name: "customer_name"}, {Name: "email_id"},
	}, nil)
	d.prefs.EXPECT().GetPreference(mock.Anything, app.DefaultUserID, app.PreferenceColumnOrder).
		Return([]byte(`["email_id","gone"]`), true, nil)

	w, body := serve(t, engine, http.MethodGet, "/quotation/columns?ordered=true", "")

	require.Equal(t, http.StatusOK, w.Code)

	cols := body["columns"].([]any)
	require.Len(t, cols, 3)
	assert.Equal(t, "email_id", cols[0].(map[string]any)["column_name"])
	assert.Equal(t, "id", cols[1].(map[string]any)["column_name"])
}

func TestTableHandler_AddColumn(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*mocks.MockTxTableStore)
		wantStatus int
		wantCode   string
	}{
		{
			name: "added",
			body: `{"column_name":"discount","column_type":"float"}`,
			setupMock: func(m *mocks.MockTxTableStore) {
				m.EXPECT().AddColumn(mock.Anything, domain.EntityItems, "discount", domain.ColumnFloat).
					Return(domain.Column{Name: "discount", Type: domain.ColumnFloat}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "duplicate",
			body: `{"column_name":"unit"}`,
			setupMock: func(m *mocks.MockTxTableStore) {
				m.EXPECT().AddColumn(mock.Anything, domain.EntityItems, "unit", domain.ColumnString).
					Return(domain.Column{}, domain.NewConflictError("column", "unit already exists"))
			},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "bad name never reaches the store",
			body:       `{"column_name":"no spaces"}`,
			setupMock:  func(*mocks.MockTxTableStore) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, d := newAPI(t)
			tt.setupMock(d.tables)

			w, body := serve(t, engine, http.MethodPost, "/items/add-column", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, body))
			} else {
				assert.Equal(t, "success", body["status"])
			}
		})
	}
}

func TestTableHandler_DeleteRequiredColumn(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().DeleteColumn(mock.Anything, domain.EntityQuotation, "customer_name").
		Return(domain.NewForbiddenError("delete column", "customer_name is required"))

	w, body := serve(t, engine, http.MethodPost, "/quotation/delete-column", `{"column_name":"customer_name"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestTableHandler_RenameColumn(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().RenameColumn(mock.Anything, domain.EntityCharges, "note", "remarks").Return(nil)

	w, body := serve(t, engine, http.MethodPost, "/charges/rename-column", `{"old_name":"note","new_name":"remarks"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "note", body["renamed_from"])
	assert.Equal(t, "remarks", body["renamed_to"])
}

func TestTableHandler_ListIsArray(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().ListRows(mock.Anything, domain.EntityCharges).Return(nil, nil)

	w, _ := serve(t, engine, http.MethodGet, "/charges", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTableHandler_CreateCharge(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().CreateRow(mock.Anything, domain.EntityCharges, domain.Row{"name": "Travel", "charge_amount": float64(500)}).
		Return(int64(4), nil)

	w, body := serve(t, engine, http.MethodPost, "/charges", `{"name":"Travel","charge_amount":500}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 4, body["created_id"], 0)
	assert.InDelta(t, 4, body["charge_id"], 0)
}

func TestTableHandler_CreateItemForMissingQuotation(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().GetRow(mock.Anything, domain.EntityQuotation, int64(9)).
		Return(nil, domain.NewNotFoundError("quotation", "9"))

	w, body := serve(t, engine, http.MethodPost, "/items", `{"quotation_id":9,"sample_activity":"Soil"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestTableHandler_CreateRejectsNonObject(t *testing.T) {
	engine, _ := newAPI(t)

	w, body := serve(t, engine, http.MethodPost, "/charges", `[1,2]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, body))
}

func TestTableHandler_UpdateField(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().UpdateField(mock.Anything, domain.EntityItems, int64(3), "qty", float64(5)).Return(nil)

	w, body := serve(t, engine, http.MethodPut, "/items/update-field", `{"item_id":3,"column_name":"qty","value":5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "qty", body["updated_column"])
	assert.InDelta(t, 3, body["item_id"], 0)
	assert.InDelta(t, 5, body["new_value"], 0)
}

func TestTableHandler_UpdateFieldRecordID(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().UpdateField(mock.Anything, domain.EntityQuotation, int64(2), "email_id", "a@b.c").Return(nil)

	w, _ := serve(t, engine, http.MethodPut, "/quotation/update-field", `{"record_id":2,"column_name":"email_id","value":"a@b.c"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTableHandler_UpdateFieldMissingID(t *testing.T) {
	engine, _ := newAPI(t)

	w, body := serve(t, engine, http.MethodPut, "/charges/update-field", `{"column_name":"name","value":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
	assert.Contains(t, body["error"].(map[string]any)["details"], "charge_id")
}

func TestTableHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setupMock  func(*mocks.MockTxTableStore)
		wantStatus int
	}{
		{
			name: "deleted",
			path: "/charges/5",
			setupMock: func(m *mocks.MockTxTableStore) {
				m.EXPECT().DeleteRow(mock.Anything, domain.EntityCharges, int64(5)).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing row",
			path: "/charges/6",
			setupMock: func(m *mocks.MockTxTableStore) {
				m.EXPECT().DeleteRow(mock.Anything, domain.EntityCharges, int64(6)).
					Return(domain.NewNotFoundError("charges", "6"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non numeric id",
			path:       "/charges/abc",
			setupMock:  func(*mocks.MockTxTableStore) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, d := newAPI(t)
			tt.setupMock(d.tables)

			w, _ := serve(t, engine, http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// --- quotation with items ---

func TestQuotationHandler_Create(t *testing.T) {
	engine, d := newAPI(t)
	passTx(d.tables)

	d.tables.EXPECT().CreateRow(mock.Anything, domain.EntityQuotation, domain.Row{"customer_name": "Acme"}).
		Return(int64(1), nil)
	d.tables.EXPECT().CreateRow(mock.Anything, domain.EntityItems, mock.Anything).Return(int64(10), nil).Once()

	w, body := serve(t, engine, http.MethodPost, "/quotation-with-items",
		`{"quotation_data":{"customer_name":"Acme"},"items_data":[{"sample_activity":"Soil","total_cost":100}]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 1, body["quotation_id"], 0)
	assert.InDelta(t, 1, body["items_created"], 0)
	assert.Equal(t, []any{float64(10)}, body["item_ids"])
}

func TestQuotationHandler_CreateRequiresQuotationData(t *testing.T) {
	engine, _ := newAPI(t)

	w, body := serve(t, engine, http.MethodPost, "/quotation-with-items", `{"items_data":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}

func TestQuotationHandler_Get(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().GetRow(mock.Anything, domain.EntityQuotation, int64(2)).
		Return(domain.Row{"id": int64(2), "customer_name": "Acme"}, nil)
	d.tables.EXPECT().FindRows(mock.Anything, domain.EntityItems, "quotation_id", int64(2)).
		Return([]domain.Row{{"id": int64(5), "total_cost": "10.5"}, {"id": int64(6), "total_cost": 4}}, nil)

	w, body := serve(t, engine, http.MethodGet, "/quotation-with-items/2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme", body["quotation"].(map[string]any)["customer_name"])
	assert.Len(t, body["items"], 2)
	assert.Equal(t, "14.50", body["total"])
}

func TestQuotationHandler_Update(t *testing.T) {
	engine, d := newAPI(t)
	passTx(d.tables)

	d.tables.EXPECT().GetRow(mock.Anything, domain.EntityQuotation, int64(3)).
		Return(domain.Row{"id": int64(3)}, nil)
	d.tables.EXPECT().UpdateRow(mock.Anything, domain.EntityQuotation, int64(3), domain.Row{"payment_terms": "30 days"}).
		Return(nil)

	w, body := serve(t, engine, http.MethodPut, "/quotation-with-items/3", `{"quotation_data":{"payment_terms":"30 days"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{app.SectionQuotationData}, body["updated_sections"])
	assert.InDelta(t, 0, body["items_deleted"], 0)
}

func TestQuotationHandler_UpdateEmptyBody(t *testing.T) {
	engine, _ := newAPI(t)

	w, _ := serve(t, engine, http.MethodPut, "/quotation-with-items/3", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotationHandler_Delete(t *testing.T) {
	engine, d := newAPI(t)
	passTx(d.tables)

	d.tables.EXPECT().GetRow(mock.Anything, domain.EntityQuotation, int64(4)).Return(domain.Row{"id": int64(4)}, nil)
	d.tables.EXPECT().DeleteRows(mock.Anything, domain.EntityItems, "quotation_id", int64(4)).Return(int64(3), nil)
	d.tables.EXPECT().DeleteRow(mock.Anything, domain.EntityQuotation, int64(4)).Return(nil)

	w, body := serve(t, engine, http.MethodDelete, "/quotation-with-items/4", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 3, body["items_deleted"], 0)
}

// --- preferences and layouts ---

func TestPreferenceHandler_ColumnOrder(t *testing.T) {
	engine, d := newAPI(t)

	d.prefs.EXPECT().GetPreference(mock.Anything, app.DefaultUserID, app.PreferenceColumnOrder).
		Return(nil, false, nil)

	w, _ := serve(t, engine, http.MethodGet, "/user-preferences/column-order", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"column_order":[]}`, w.Body.String())
}

func TestPreferenceHandler_SaveColumnOrder(t *testing.T) {
	engine, d := newAPI(t)

	d.prefs.EXPECT().SetPreference(mock.Anything, app.DefaultUserID, app.PreferenceColumnOrder, []byte(`["email_id","id"]`)).
		Return(nil)

	w, body := serve(t, engine, http.MethodPost, "/user-preferences/column-order", `{"column_order":["email_id"," id ","email_id"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"email_id", "id"}, body["saved"])
}

func TestPreferenceHandler_GlobalTemplateMissing(t *testing.T) {
	engine, d := newAPI(t)

	d.layouts.EXPECT().LoadLayout(mock.Anything, layout.GlobalKey()).Return(nil, false, nil)

	w, _ := serve(t, engine, http.MethodGet, "/user-preferences/global-quotation-template", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"template":[]}`, w.Body.String())
}

func TestPreferenceHandler_QuotationLayoutRoundTrip(t *testing.T) {
	engine, d := newAPI(t)

	var stored []byte

	d.layouts.EXPECT().SaveLayout(mock.Anything, layout.QuotationKey("12"), mock.Anything).
		RunAndReturn(func(_ context.Context, _ layout.Key, data []byte) error {
			stored = data
			return nil
		})

	w, body := serve(t, engine, http.MethodPost, "/user-preferences/quotation-layout/12",
		`{"layout":[{"canvasId":"canvas-a","type":"header","value":"QUOTE"},{"canvasId":"canvas-b","type":"divider"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 2, body["blocks"], 0)
	require.NotEmpty(t, stored)

	d.layouts.EXPECT().LoadLayout(mock.Anything, layout.QuotationKey("12")).Return(stored, true, nil)

	w, body = serve(t, engine, http.MethodGet, "/user-preferences/quotation-layout/12", "")

	require.Equal(t, http.StatusOK, w.Code)

	blocks := body["layout"].([]any)
	require.Len(t, blocks, 2)
	assert.Equal(t, "QUOTE", blocks[0].(map[string]any)["value"])
	assert.InDelta(t, float64(layout.DefaultStyle(layout.KindHeader).FontSize), blocks[0].(map[string]any)["fontSize"], 0)
}

func TestPreferenceHandler_SaveRejectsDuplicateCanvasIDs(t *testing.T) {
	engine, _ := newAPI(t)

	w, body := serve(t, engine, http.MethodPost, "/user-preferences/global-quotation-template",
		`{"template":[{"canvasId":"a","type":"text"},{"canvasId":"a","type":"text"}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"].(map[string]any)["details"], "[1].canvasId")
}

func TestPreferenceHandler_UnreadableStoredLayout(t *testing.T) {
	engine, d := newAPI(t)

	d.layouts.EXPECT().LoadLayout(mock.Anything, layout.GlobalKey()).Return([]byte(`{"not":"an array"}`), true, nil)

	w, body := serve(t, engine, http.MethodGet, "/user-preferences/global-quotation-template", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, body))
}

func TestPreferenceHandler_DeleteGlobalTemplate(t *testing.T) {
	engine, d := newAPI(t)

	d.layouts.EXPECT().DeleteLayout(mock.Anything, layout.GlobalKey()).Return(nil)

	w, body := serve(t, engine, http.MethodDelete, "/user-preferences/global-quotation-template", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
}

// --- designer ---

func TestDesignerHandler_Templates(t *testing.T) {
	engine, d := newAPI(t)

	w, body := serve(t, engine, http.MethodGet, "/designer/templates/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["templates"], len(layout.SpecialTemplates()))

	d.tables.EXPECT().GetRow(mock.Anything, domain.EntityQuotation, int64(8)).
		Return(domain.Row{"id": int64(8), "customer_name": "Acme"}, nil)

	w, body = serve(t, engine, http.MethodGet, "/designer/templates/8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, len(body["templates"].([]any)), len(layout.SpecialTemplates()))
}

func TestDesignerHandler_Properties(t *testing.T) {
	engine, _ := newAPI(t)

	w, body := serve(t, engine, http.MethodGet, "/designer/properties/image", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["properties"])

	w, body = serve(t, engine, http.MethodGet, "/designer/properties/video", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}

func TestDesignerHandler_Preview(t *testing.T) {
	engine, d := newAPI(t)

	d.tables.EXPECT().GetRow(mock.Anything, domain.EntityQuotation, int64(5)).
		Return(domain.Row{"id": int64(5)}, nil)
	d.tables.EXPECT().FindRows(mock.Anything, domain.EntityItems, "quotation_id", int64(5)).
		Return([]domain.Row{{"sample_activity": "Soil", "total_cost": "250"}}, nil)
	d.layouts.EXPECT().LoadLayout(mock.Anything, layout.GlobalKey()).
		Return([]byte(`[{"canvasId":"c1","type":"table"},{"canvasId":"c2","type":"total"}]`), true, nil)

	w, body := serve(t, engine, http.MethodGet, "/designer/preview/5?scope=global", "")

	require.Equal(t, http.StatusOK, w.Code)

	blocks := body["blocks"].([]any)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].(map[string]any)["rows"], 1)
	assert.Equal(t, "250.00", blocks[1].(map[string]any)["total"])
}

func TestDesignerHandler_PreviewBadScope(t *testing.T) {
	engine, _ := newAPI(t)

	w, _ := serve(t, engine, http.MethodGet, "/designer/preview/5?scope=team", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
