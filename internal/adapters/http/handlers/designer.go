package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// DesignerHandler serves the read-only helpers of the layout designer: the
// block palette, the property panel description and the rendered preview.
type DesignerHandler struct {
	service *app.DesignerService
}

// NewDesignerHandler creates a new designer handler.
func NewDesignerHandler(service *app.DesignerService) *DesignerHandler {
	return &DesignerHandler{service: service}
}

// Templates handles GET /designer/templates/:quotationId.
// An id of 0 returns only the special blocks.
func (h *DesignerHandler) Templates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("quotationId"), 10, 64)
	if err != nil || id < 0 {
		dto.AbortWithBadRequest(c, "quotationId must be a non-negative integer")
		return
	}

	templates, err := h.service.Templates(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// Properties handles GET /designer/properties/:kind.
func (h *DesignerHandler) Properties(c *gin.Context) {
	specs, err := app.Properties(c.Param("kind"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": c.Param("kind"), "properties": specs})
}

// Preview handles GET /designer/preview/:quotationId?scope=quotation|global.
func (h *DesignerHandler) Preview(c *gin.Context) {
	id, ok := positiveParam(c, "quotationId")
	if !ok {
		return
	}

	var q dto.PreviewQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	scope, err := layout.ParseScope(q.Scope)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	blocks, err := h.service.Preview(c.Request.Context(), id, scope)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotation_id": id,
		"scope":        scope,
		"blocks":       blocks,
	})
}

// RegisterDesignerRoutes registers the /designer routes.
func (h *DesignerHandler) RegisterDesignerRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/designer")
	g.GET("/templates/:quotationId", h.Templates)
	g.GET("/properties/:kind", h.Properties)
	g.GET("/preview/:quotationId", h.Preview)
}
