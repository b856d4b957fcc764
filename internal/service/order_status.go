package service

import (
	"strings"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/queue"
	"github.com/kasuwa-shop/internal/repository"
)

// allowedTransitions 订单状态机（CANCELLED 与 DELIVERED 为终态）
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusPaid:      true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

// isTransitionAllowed 判断状态流转是否合法
func isTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// canCancelOrder 仅待支付与已支付订单允许取消
func canCancelOrder(order *models.Order) bool {
	return order != nil && isTransitionAllowed(order.Status, constants.OrderStatusCancelled)
}

// normalizeOrderStatus 规范化并校验订单状态
func normalizeOrderStatus(raw string) (string, bool) {
	status := strings.ToUpper(strings.TrimSpace(raw))
	for _, candidate := range constants.OrderStatuses {
		if candidate == status {
			return status, true
		}
	}
	return "", false
}

// normalizePaymentMethod 规范化并校验支付方式
func normalizePaymentMethod(raw string) (string, bool) {
	method := strings.ToUpper(strings.TrimSpace(raw))
	switch method {
	case constants.PaymentMethodFiat, constants.PaymentMethodCrypto:
		return method, true
	default:
		return "", false
	}
}

// enqueueOrderStatusNotify 投递状态通知任务；收件邮箱缺失时跳过。
// 返回值 skipped 表示任务被跳过。
func enqueueOrderStatusNotify(orderRepo repository.OrderRepository, queueClient *queue.Client, orderID uint, status string) (skipped bool, err error) {
	if queueClient == nil || !queueClient.Enabled() || orderID == 0 {
		return true, nil
	}
	if orderRepo != nil {
		receiver, lookupErr := orderRepo.ResolveReceiverEmailByOrderID(orderID)
		if lookupErr == nil && strings.TrimSpace(receiver) == "" {
			return true, nil
		}
	}
	if err := queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}

// OrderStatusNotification 订单状态通知内容
type OrderStatusNotification struct {
	OrderID     uint
	OrderNumber string
	UserID      uint
	Receiver    string
	Status      string
	TotalAmount models.Money
}
