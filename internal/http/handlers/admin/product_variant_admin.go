package admin

import (
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VariantRequest 规格写入请求
type VariantRequest struct {
	Name            string        `json:"name" binding:"required,max=100"`
	Value           string        `json:"value" binding:"required,max=100"`
	PriceAdjustment *models.Money `json:"price_adjustment"`
	StockQuantity   int           `json:"stock_quantity"`
}

func (r VariantRequest) toInput() service.VariantInput {
	adjustment := decimal.Zero
	if r.PriceAdjustment != nil {
		adjustment = r.PriceAdjustment.Decimal
	}
	return service.VariantInput{
		Name:            r.Name,
		Value:           r.Value,
		PriceAdjustment: adjustment,
		StockQuantity:   r.StockQuantity,
	}
}

// ListVariants 商品规格列表
func (h *Handler) ListVariants(c *gin.Context) {
	productID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	variants, err := h.ProductVariantService.List(productID)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, variants)
}

// CreateVariant 新增规格
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	variant, err := h.ProductVariantService.Create(productID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新规格
func (h *Handler) UpdateVariant(c *gin.Context) {
	variantID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	variant, err := h.ProductVariantService.Update(variantID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除规格（被订单引用时拒绝）
func (h *Handler) DeleteVariant(c *gin.Context) {
	variantID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductVariantService.Delete(variantID); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
