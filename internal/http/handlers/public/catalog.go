package public

import (
	"strings"

	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListCategories 全部分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, categories)
}

// ListRootCategories 顶级分类（含直接子分类）
func (h *Handler) ListRootCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListRoots()
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, category)
}

// ListProducts 公开商品列表
// 支持 category（含子分类）、search、min_price、max_price 与分页
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	minPrice, ok := parsePriceQuery(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := parsePriceQuery(c, "max_price")
	if !ok {
		return
	}
	products, total, err := h.ProductService.ListPublic(service.PublicProductQuery{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: c.Query("category"),
		Search:       strings.TrimSpace(c.Query("search")),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 公开商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, product)
}

func parsePriceQuery(c *gin.Context, key string) (*decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	value, err := models.ParseMoney(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &value.Decimal, true
}
