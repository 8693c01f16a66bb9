package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// PreferenceHandler serves /user-preferences: the column order and the stored
// designer layouts, per quotation and global.
type PreferenceHandler struct {
	preferences *app.PreferenceService
	layouts     *app.LayoutService
}

// NewPreferenceHandler creates a new preference handler.
func NewPreferenceHandler(preferences *app.PreferenceService, layouts *app.LayoutService) *PreferenceHandler {
	return &PreferenceHandler{
		preferences: preferences,
		layouts:     layouts,
	}
}

// GetColumnOrder handles GET /user-preferences/column-order.
func (h *PreferenceHandler) GetColumnOrder(c *gin.Context) {
	order, err := h.preferences.ColumnOrder(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"column_order": order})
}

// SaveColumnOrder handles POST /user-preferences/column-order.
func (h *PreferenceHandler) SaveColumnOrder(c *gin.Context) {
	var req dto.ColumnOrderRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	saved, err := h.preferences.SaveColumnOrder(c.Request.Context(), req.ColumnOrder)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "saved": saved})
}

// GetQuotationLayout handles GET /user-preferences/quotation-layout/:quotationId.
func (h *PreferenceHandler) GetQuotationLayout(c *gin.Context) {
	h.getLayout(c, layout.QuotationKey(c.Param("quotationId")), "layout")
}

// SaveQuotationLayout handles POST /user-preferences/quotation-layout/:quotationId.
func (h *PreferenceHandler) SaveQuotationLayout(c *gin.Context) {
	var req dto.LayoutRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	h.saveLayout(c, layout.QuotationKey(c.Param("quotationId")), "layout", req.Layout)
}

// DeleteQuotationLayout handles DELETE /user-preferences/quotation-layout/:quotationId.
func (h *PreferenceHandler) DeleteQuotationLayout(c *gin.Context) {
	h.deleteLayout(c, layout.QuotationKey(c.Param("quotationId")))
}

// GetGlobalTemplate handles GET /user-preferences/global-quotation-template.
func (h *PreferenceHandler) GetGlobalTemplate(c *gin.Context) {
	h.getLayout(c, layout.GlobalKey(), "template")
}

// SaveGlobalTemplate handles POST /user-preferences/global-quotation-template.
func (h *PreferenceHandler) SaveGlobalTemplate(c *gin.Context) {
	var req dto.TemplateRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	h.saveLayout(c, layout.GlobalKey(), "template", req.Template)
}

// DeleteGlobalTemplate handles DELETE /user-preferences/global-quotation-template.
func (h *PreferenceHandler) DeleteGlobalTemplate(c *gin.Context) {
	h.deleteLayout(c, layout.GlobalKey())
}

func (h *PreferenceHandler) getLayout(c *gin.Context, key layout.Key, field string) {
	blocks, err := h.layouts.LoadBlocks(c.Request.Context(), key)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{field: layout.ToWire(blocks)})
}

func (h *PreferenceHandler) saveLayout(c *gin.Context, key layout.Key, field string, raw []map[string]any) {
	blocks, err := h.layouts.SaveWire(c.Request.Context(), key, raw)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"blocks": len(blocks),
		field:    layout.ToWire(blocks),
	})
}

func (h *PreferenceHandler) deleteLayout(c *gin.Context, key layout.Key) {
	if err := h.layouts.Delete(c.Request.Context(), key); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RegisterPreferenceRoutes registers the /user-preferences routes.
func (h *PreferenceHandler) RegisterPreferenceRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/user-preferences")
	g.GET("/column-order", h.GetColumnOrder)
	g.POST("/column-order", h.SaveColumnOrder)

	g.GET("/quotation-layout/:quotationId", h.GetQuotationLayout)
	g.POST("/quotation-layout/:quotationId", h.SaveQuotationLayout)
	g.DELETE("/quotation-layout/:quotationId", h.DeleteQuotationLayout)

	g.GET("/global-quotation-template", h.GetGlobalTemplate)
	g.POST("/global-quotation-template", h.SaveGlobalTemplate)
	g.DELETE("/global-quotation-template", h.DeleteGlobalTemplate)
}
