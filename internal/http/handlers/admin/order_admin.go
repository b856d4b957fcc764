package admin

import (
	"strings"
	"time"

	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// UpdateOrderStatusRequest 订单状态变更请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 后台订单列表
// 支持 status、user_id、order_number、created_from、created_to 过滤
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      cast.ToUint(c.Query("user_id")),
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNumber: strings.TrimSpace(c.Query("order_number")),
	}
	var ok bool
	if filter.CreatedFrom, ok = parseTimeQuery(c, "created_from"); !ok {
		return
	}
	if filter.CreatedTo, ok = parseTimeQuery(c, "created_to"); !ok {
		return
	}
	orders, total, err := h.OrderService.ListOrdersForAdmin(filter)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 后台订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.query_failed")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 按状态机更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.save_failed")
		return
	}
	staffID, _ := c.Get("user_id")
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"status", order.Status,
		"staff_id", staffID,
	)
	response.Success(c, order)
}

// DeleteOrder 删除订单（订单项级联删除）
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	if err := h.OrderService.DeleteOrder(id); err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	value, err := cast.ToTimeE(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &value, true
}
