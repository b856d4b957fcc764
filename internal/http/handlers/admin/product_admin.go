package admin

import (
	"strings"

	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ProductRequest 商品写入请求；SKU 由系统生成
type ProductRequest struct {
	CategoryID    uint          `json:"category_id" binding:"required"`
	Name          string        `json:"name" binding:"required,max=255"`
	Slug          string        `json:"slug" binding:"omitempty,max=255"`
	Description   string        `json:"description"`
	Price         *models.Money `json:"price" binding:"required"`
	StockQuantity int           `json:"stock_quantity"`
	Weight        *models.Money `json:"weight"`
	IsActive      *bool         `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	weight := decimal.Zero
	if r.Weight != nil {
		weight = r.Weight.Decimal
	}
	return service.ProductInput{
		CategoryID:    r.CategoryID,
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		Price:         r.Price.Decimal,
		StockQuantity: r.StockQuantity,
		Weight:        weight,
		IsActive:      r.IsActive,
	}
}

// ListProducts 后台商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if categoryID := cast.ToUint(c.Query("category_id")); categoryID > 0 {
		filter.CategoryIDs = []uint{categoryID}
	}
	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 后台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "sku", product.SKU)
	response.Success(c, product)
}

// UpdateProduct 更新商品（价格变更不影响已下单快照）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（被订单引用时拒绝）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
