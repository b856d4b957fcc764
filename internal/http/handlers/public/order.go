package public

import (
	"strings"

	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PlaceOrderItemRequest 下单项
type PlaceOrderItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	ShippingAddressID uint                    `json:"shipping_address_id" binding:"required"`
	ShippingCost      *models.Money           `json:"shipping_cost"`
	PaymentMethod     string                  `json:"payment_method" binding:"required,payment_method"`
	Items             []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder 创建订单
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	shippingCost := decimal.Zero
	if req.ShippingCost != nil {
		shippingCost = req.ShippingCost.Decimal
	}
	items := make([]service.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PlaceOrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID:            userID,
		ShippingAddressID: req.ShippingAddressID,
		ShippingCost:      shippingCost,
		PaymentMethod:     req.PaymentMethod,
		Items:             items,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}

// ListOrders 我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	orders, total, err := h.OrderService.ListOrders(userID, repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// ListPendingOrders 我的待支付订单
func (h *Handler) ListPendingOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	orders, total, err := h.OrderService.ListPendingOrders(userID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情（他人订单返回不存在）
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(orderID, userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.query_failed")
		return
	}
	response.Success(c, order)
}

// GetOrderByNumber 按订单号查询
func (h *Handler) GetOrderByNumber(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderByNumber(c.Param("order_number"), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.query_failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单（仅待支付、已支付）
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.CancelOrder(orderID, userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.save_failed")
		return
	}
	response.Success(c, order)
}
