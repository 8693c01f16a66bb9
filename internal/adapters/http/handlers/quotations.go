package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// QuotationHandler serves /quotation-with-items.
type QuotationHandler struct {
	service *app.QuotationService
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(service *app.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

// quotationResponse adds the computed total to a quotation with its items.
type quotationResponse struct {
	app.QuotationWithItems

	Total string `json:"total"`
}

func toQuotationResponse(q app.QuotationWithItems) quotationResponse {
	return quotationResponse{QuotationWithItems: q, Total: domain.FormatAmount(q.Total())}
}

// Create handles POST /quotation-with-items.
func (h *QuotationHandler) Create(c *gin.Context) {
	var req dto.CreateQuotationRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), domain.Row(req.QuotationData), req.Items())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":        "success",
		"quotation_id":  res.QuotationID,
		"items_created": len(res.ItemIDs),
		"item_ids":      res.ItemIDs,
	})
}

// Get handles GET /quotation-with-items/:quotationId.
func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := positiveParam(c, "quotationId")
	if !ok {
		return
	}

	q, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuotationResponse(q))
}

// List handles GET /quotation-with-items.
func (h *QuotationHandler) List(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out := make([]quotationResponse, len(all))
	for i, q := range all {
		out[i] = toQuotationResponse(q)
	}

	c.JSON(http.StatusOK, out)
}

// Update handles PUT /quotation-with-items/:quotationId.
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := positiveParam(c, "quotationId")
	if !ok {
		return
	}

	var req dto.UpdateQuotationRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, app.UpdateRequest{
		QuotationData: domain.Row(req.QuotationData),
		ItemsData:     req.Items(),
		ItemsToDelete: req.ItemsToDelete,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"quotation_id":     res.QuotationID,
		"updated_sections": res.UpdatedSections,
		"items_updated":    len(res.UpdatedItemIDs),
		"items_created":    len(res.CreatedItemIDs),
		"items_deleted":    len(res.DeletedItemIDs),
		"updated_item_ids": res.UpdatedItemIDs,
		"created_item_ids": res.CreatedItemIDs,
		"deleted_item_ids": res.DeletedItemIDs,
	})
}

// Delete handles DELETE /quotation-with-items/:quotationId.
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := positiveParam(c, "quotationId")
	if !ok {
		return
	}

	n, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"quotation_id":  id,
		"items_deleted": n,
	})
}

// RegisterQuotationRoutes registers the composite quotation routes.
func (h *QuotationHandler) RegisterQuotationRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/quotation-with-items")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:quotationId", h.Get)
	g.PUT("/:quotationId", h.Update)
	g.DELETE("/:quotationId", h.Delete)
}
