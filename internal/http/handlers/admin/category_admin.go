package admin

import (
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类写入请求（slug 为空时由名称生成）
type CategoryRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Slug     string `json:"slug" binding:"omitempty,max=100"`
	ParentID *uint  `json:"parent_id"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:     r.Name,
		Slug:     r.Slug,
		ParentID: r.ParentID,
	}
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（子树内有商品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
