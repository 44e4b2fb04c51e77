package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"prodcat/internal/domain/product"
	"prodcat/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles product query and deletion endpoints.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /product
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.GetProductsQuery
	if !h.BindQuery(c, &req) {
		return
	}

	filter := product.QueryFilter{
		Name:     req.Name,
		Brand:    req.Brand,
		Model:    req.Model,
		Category: req.Category,
		Page:     req.Page,
		Limit:    req.Limit,
	}
	if req.MinPrice != nil {
		min := decimal.NewFromFloat(*req.MinPrice)
		filter.MinPrice = &min
	}
	if req.MaxPrice != nil {
		max := decimal.NewFromFloat(*req.MaxPrice)
		filter.MaxPrice = &max
	}

	result, err := h.service.Query(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Delete handles DELETE /product/:sku
func (h *ProductHandler) Delete(c *gin.Context) {
	sku := c.Param("sku")

	if err := h.service.Delete(c.Request.Context(), sku); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "Product deleted successfully")
}
