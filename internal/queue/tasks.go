package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kasuwa-shop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	TaskOrderStatusNotify  = constants.TaskOrderStatusNotify
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
)

var errMissingOrderID = errors.New("order id is required")

// OrderStatusNotifyPayload 订单状态通知载荷
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderTimeoutCancelPayload 支付超时取消载荷
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	if payload.OrderID == 0 {
		return nil, fmt.Errorf("%s: %w", TaskOrderStatusNotify, errMissingOrderID)
	}
	return newJSONTask(TaskOrderStatusNotify, payload)
}

// NewOrderTimeoutCancelTask 创建支付超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	if payload.OrderID == 0 {
		return nil, fmt.Errorf("%s: %w", TaskOrderTimeoutCancel, errMissingOrderID)
	}
	return newJSONTask(TaskOrderTimeoutCancel, payload)
}

// OrderStatusNotifyTaskID 状态通知任务 ID（订单 + 状态）
func OrderStatusNotifyTaskID(orderID uint, status string) string {
	return fmt.Sprintf("order-status-notify-%d-%s", orderID, strings.ToLower(strings.TrimSpace(status)))
}

// OrderTimeoutCancelTaskID 超时取消任务 ID（每个订单一条）
func OrderTimeoutCancelTaskID(orderID uint) string {
	return fmt.Sprintf("order-timeout-cancel-%d", orderID)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, body), nil
}
