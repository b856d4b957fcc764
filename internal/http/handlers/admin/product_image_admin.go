package admin

import (
	"github.com/kasuwa-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ImageRequest 商品图片请求
type ImageRequest struct {
	URL       string `json:"image" binding:"required,max=500"`
	IsPrimary bool   `json:"is_primary"`
}

// ListImages 商品图片列表（主图在前）
func (h *Handler) ListImages(c *gin.Context) {
	productID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	images, err := h.ProductImageService.List(productID)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.query_failed")
		return
	}
	response.Success(c, images)
}

// AddImage 新增商品图片
func (h *Handler) AddImage(c *gin.Context) {
	productID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	image, err := h.ProductImageService.Add(productID, req.URL, req.IsPrimary)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, image)
}

// SetPrimaryImage 设为主图
func (h *Handler) SetPrimaryImage(c *gin.Context) {
	imageID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	image, err := h.ProductImageService.SetPrimaryByImage(imageID)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.save_failed")
		return
	}
	response.Success(c, image)
}

// DeleteImage 删除商品图片
func (h *Handler) DeleteImage(c *gin.Context) {
	imageID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductImageService.Delete(imageID); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
