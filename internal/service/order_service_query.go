package service

import (
	"strings"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"
)

// ensureOrderCancelledIfExpired 读取时懒同步过期订单状态
func (s *OrderService) ensureOrderCancelledIfExpired(order *models.Order) {
	if !s.isExpiredPending(order) {
		return
	}
	if err := s.transition(order, constants.OrderStatusCancelled); err != nil {
		logger.Warnw("order_lazy_expire_cancel_failed",
			"order_id", order.ID,
			"error", err,
		)
	}
}

// GetOrder 获取用户自己的订单详情（他人订单视为不存在）
func (s *OrderService) GetOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	s.ensureOrderCancelledIfExpired(order)
	return order, nil
}

// GetOrderByNumber 按订单号获取用户自己的订单
func (s *OrderService) GetOrderByNumber(orderNumber string, userID uint) (*models.Order, error) {
	orderNumber = strings.ToUpper(strings.TrimSpace(orderNumber))
	if !IsValidIdentifier(orderNumber, constants.OrderNumberLength) {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNumberAndUser(orderNumber, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	s.ensureOrderCancelledIfExpired(order)
	return order, nil
}

// ListOrders 用户订单列表
func (s *OrderService) ListOrders(userID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.UserID = userID
	if filter.Status != "" {
		status, ok := normalizeOrderStatus(filter.Status)
		if !ok {
			return nil, 0, ErrInvalidOrderStatus
		}
		filter.Status = status
	}
	return s.orderRepo.ListByUser(filter)
}

// ListPendingOrders 用户待支付订单列表
func (s *OrderService) ListPendingOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   constants.OrderStatusPending,
	})
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		status, ok := normalizeOrderStatus(filter.Status)
		if !ok {
			return nil, 0, ErrInvalidOrderStatus
		}
		filter.Status = status
	}
	filter.OrderNumber = strings.ToUpper(strings.TrimSpace(filter.OrderNumber))
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
