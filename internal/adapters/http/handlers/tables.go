package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// TableHandler serves the schema and row endpoints of one dynamic table.
// The same handler type is mounted once per entity.
type TableHandler struct {
	entity      domain.Entity
	service     *app.TableService
	preferences *app.PreferenceService
}

// NewTableHandler creates a handler for entity. preferences may be nil, in
// which case ?ordered=true is ignored.
func NewTableHandler(entity domain.Entity, service *app.TableService, preferences *app.PreferenceService) *TableHandler {
	return &TableHandler{
		entity:      entity,
		service:     service,
		preferences: preferences,
	}
}

type columnsResponse struct {
	Columns []domain.Column `json:"columns"`
}

// Columns handles GET /<entity>/columns.
// With ?ordered=true the saved column-order preference is applied.
func (h *TableHandler) Columns(c *gin.Context) {
	ctx := c.Request.Context()

	cols, err := h.service.Columns(ctx, h.entity)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if h.preferences != nil && c.Query("ordered") == "true" {
		order, err := h.preferences.ColumnOrder(ctx)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		cols = app.ApplyColumnOrder(cols, order)
	}

	if cols == nil {
		cols = []domain.Column{}
	}

	c.JSON(http.StatusOK, columnsResponse{Columns: cols})
}

// AddColumn handles POST /<entity>/add-column.
func (h *TableHandler) AddColumn(c *gin.Context) {
	var req dto.AddColumnRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	col, err := h.service.AddColumn(c.Request.Context(), h.entity, req.ColumnName, req.ColumnType)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"added":  col.Name,
		"column": col,
	})
}

// DeleteColumn handles POST /<entity>/delete-column.
func (h *TableHandler) DeleteColumn(c *gin.Context) {
	var req dto.DeleteColumnRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	if err := h.service.DeleteColumn(c.Request.Context(), h.entity, req.ColumnName); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "deleted": req.ColumnName})
}

// RenameColumn handles POST /<entity>/rename-column.
func (h *TableHandler) RenameColumn(c *gin.Context) {
	var req dto.RenameColumnRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	if err := h.service.RenameColumn(c.Request.Context(), h.entity, req.OldName, req.NewName); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"renamed_from": req.OldName,
		"renamed_to":   req.NewName,
	})
}

// List handles GET /<entity> and returns a bare array of rows.
func (h *TableHandler) List(c *gin.Context) {
	rows, err := h.service.ListRows(c.Request.Context(), h.entity)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if rows == nil {
		rows = []domain.Row{}
	}

	c.JSON(http.StatusOK, rows)
}

// Get handles GET /<entity>/:id.
func (h *TableHandler) Get(c *gin.Context) {
	id, ok := rowID(c)
	if !ok {
		return
	}

	row, err := h.service.GetRow(c.Request.Context(), h.entity, id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// Create handles POST /<entity>. The body is a flat column→value object;
// unknown keys are dropped by the store.
func (h *TableHandler) Create(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		if !dto.AbortIfTooLarge(c, err) {
			dto.AbortWithBadRequest(c, "request body must be a JSON object")
		}
		return
	}

	id, err := h.service.CreateRow(c.Request.Context(), h.entity, domain.Row(data))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":           "success",
		"created_id":       id,
		h.entity.IDField(): id,
	})
}

// UpdateField handles PUT /<entity>/update-field.
func (h *TableHandler) UpdateField(c *gin.Context) {
	var req dto.UpdateFieldRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	id, ok := req.RowID(h.entity)
	if !ok {
		dto.HandleError(c, domain.NewValidationError(h.entity.IDField(), "this field is required"))
		return
	}

	if err := h.service.UpdateField(c.Request.Context(), h.entity, id, req.ColumnName, req.Value); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"updated_column":   req.ColumnName,
		h.entity.IDField(): id,
		"new_value":        req.Value,
	})
}

// Delete handles DELETE /<entity>/:id.
func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := rowID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRow(c.Request.Context(), h.entity, id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": string(h.entity) + " row " + strconv.FormatInt(id, 10) + " deleted",
	})
}

// RegisterTableRoutes mounts the handler under /<entity>.
func (h *TableHandler) RegisterTableRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/" + string(h.entity))
	g.GET("/columns", h.Columns)
	g.POST("/add-column", h.AddColumn)
	g.POST("/delete-column", h.DeleteColumn)
	g.POST("/rename-column", h.RenameColumn)
	g.PUT("/update-field", h.UpdateField)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

// rowID parses the :id path parameter, answering 400 itself on failure.
func rowID(c *gin.Context) (int64, bool) {
	return positiveParam(c, "id")
}

func positiveParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		dto.AbortWithBadRequest(c, name+" must be a positive integer")
		return 0, false
	}

	return id, true
}
