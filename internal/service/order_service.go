package service

import (
	"errors"
	"time"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/queue"
	"github.com/kasuwa-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	addressRepo   repository.AddressRepository
	productRepo   repository.ProductRepository
	variantRepo   repository.ProductVariantRepository
	allocator     *OrderNumberAllocator
	queueClient   *queue.Client
	expireMinutes int
	now           func() time.Time
}

// NewOrderService 创建订单服务；expireMinutes 为 0 时不设置支付期限
func NewOrderService(orderRepo repository.OrderRepository, addressRepo repository.AddressRepository, productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, allocator *OrderNumberAllocator, queueClient *queue.Client, expireMinutes int) *OrderService {
	if allocator == nil {
		allocator = NewOrderNumberAllocator(orderRepo, constants.OrderNumberMaxAttempts)
	}
	if expireMinutes < 0 {
		expireMinutes = 0
	}
	return &OrderService{
		orderRepo:     orderRepo,
		addressRepo:   addressRepo,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		allocator:     allocator,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
		now:           time.Now,
	}
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	UserID            uint
	ShippingAddressID uint
	ShippingCost      decimal.Decimal
	PaymentMethod     string
	Items             []PlaceOrderItem
}

// PlaceOrderItem 下单项输入
type PlaceOrderItem struct {
	ProductID uint
	VariantID *uint
	Quantity  int
}

// PlaceOrder 创建订单：校验地址归属与下单项，快照单价，单事务落库
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	now := s.now()
	order := &models.Order{
		UserID:            input.UserID,
		ShippingAddressID: input.ShippingAddressID,
		Status:            constants.OrderStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if s.expireMinutes > 0 {
		expiresAt := now.Add(time.Duration(s.expireMinutes) * time.Minute)
		order.ExpiresAt = &expiresAt
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		address, err := s.addressRepo.WithTx(tx).GetByIDForUpdate(input.ShippingAddressID)
		if err != nil {
			return err
		}
		if address == nil || address.UserID != input.UserID {
			return ErrInvalidShippingAddress
		}
		if err := validateOrderLines(input.Items); err != nil {
			return err
		}
		if input.ShippingCost.IsNegative() {
			return ErrInvalidShippingCost
		}
		method, ok := normalizePaymentMethod(input.PaymentMethod)
		if !ok {
			return ErrInvalidPaymentMethod
		}
		order.PaymentMethod = method

		items, subtotal, err := priceOrderItems(s.productRepo.WithTx(tx), s.variantRepo.WithTx(tx), input.Items, now)
		if err != nil {
			return err
		}
		order.ShippingCost = models.NewMoneyFromDecimal(input.ShippingCost)
		order.TotalAmount = models.NewMoneyFromDecimal(subtotal.Add(input.ShippingCost))

		_, err = s.allocator.Reserve(tx, func(sp *gorm.DB, orderNumber string) error {
			order.ID = 0
			order.OrderNumber = orderNumber
			attempt := make([]models.OrderItem, len(items))
			copy(attempt, items)
			return s.orderRepo.WithTx(sp).Create(order, attempt)
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrOrderNumberExhausted) {
			logger.Errorw("order_number_allocation_exhausted",
				"user_id", input.UserID,
				"error", err,
			)
		}
		return nil, err
	}

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"items", len(order.Items),
	)
	s.afterOrderPlaced(order)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// afterOrderPlaced 提交后投递通知与超时取消任务，失败只记录日志（由定时巡检兜底）
func (s *OrderService) afterOrderPlaced(order *models.Order) {
	if _, err := enqueueOrderStatusNotify(s.orderRepo, s.queueClient, order.ID, order.Status); err != nil {
		logger.Warnw("order_enqueue_status_notify_failed",
			"order_id", order.ID,
			"status", order.Status,
			"error", err,
		)
	}
	if s.queueClient == nil || order.ExpiresAt == nil {
		return
	}
	delay := order.ExpiresAt.Sub(s.now())
	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{OrderID: order.ID}, delay); err != nil {
		logger.Errorw("order_enqueue_timeout_cancel_failed",
			"order_id", order.ID,
			"order_number", order.OrderNumber,
			"error", err,
		)
	}
}

// validateOrderLines 下单项非空且数量至少为 1
func validateOrderLines(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return ErrInvalidLineItem
	}
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return ErrInvalidLineItem
		}
	}
	return nil
}

// priceOrderItems 解析当前单价并生成订单项快照，返回商品小计
func priceOrderItems(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, lines []PlaceOrderItem, now time.Time) ([]models.OrderItem, decimal.Decimal, error) {
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	products := make(map[uint]*models.Product, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			loaded, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if loaded == nil {
				return nil, decimal.Zero, ErrProductNotFound
			}
			products[line.ProductID] = loaded
			product = loaded
		}

		unitPrice := product.Price.Decimal
		var variantID *uint
		if line.VariantID != nil {
			variant, err := variantRepo.GetByID(*line.VariantID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if variant == nil {
				return nil, decimal.Zero, ErrVariantNotFound
			}
			if variant.ProductID != product.ID {
				return nil, decimal.Zero, ErrVariantMismatch
			}
			unitPrice = variant.EffectivePrice(product.Price.Decimal)
			id := variant.ID
			variantID = &id
		}
		if unitPrice.IsNegative() {
			return nil, decimal.Zero, ErrInvalidLineItem
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:  product.ID,
			VariantID:  variantID,
			Quantity:   line.Quantity,
			Price:      models.NewMoneyFromDecimal(unitPrice),
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
			CreatedAt:  now,
		})
	}
	return items, subtotal, nil
}

// CancelOrder 用户取消订单（仅 PENDING / PAID）
func (s *OrderService) CancelOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOwnershipMismatch
	}
	if !canCancelOrder(order) {
		return nil, ErrInvalidTransition
	}
	if err := s.transition(order, constants.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus 管理端按状态机更新订单状态
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	target, ok := normalizeOrderStatus(targetStatus)
	if !ok {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrInvalidTransition
	}
	if err := s.transition(order, target); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelExpiredOrder 取消已过支付期限的待支付订单；其他情况原样返回
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !s.isExpiredPending(order) {
		return order, nil
	}
	if err := s.transition(order, constants.OrderStatusCancelled); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			// 并发支付或取消已改变状态
			latest, fetchErr := s.orderRepo.GetByID(orderID)
			if fetchErr != nil {
				return nil, fetchErr
			}
			return latest, nil
		}
		return nil, err
	}
	logger.Infow("order_expired_cancelled",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
	)
	return order, nil
}

// ListExpiredPendingOrderIDs 列出已过期的待支付订单 ID
func (s *OrderService) ListExpiredPendingOrderIDs(limit int) ([]uint, error) {
	return s.orderRepo.ListExpiredPendingIDs(s.now(), constants.OrderStatusPending, limit)
}

// DeleteOrder 管理端删除订单（订单项级联删除）
func (s *OrderService) DeleteOrder(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Delete(orderID)
	}); err != nil {
		return err
	}
	logger.Infow("order_deleted",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"status", order.Status,
	)
	return nil
}

// BuildStatusNotification 组装订单状态通知
func (s *OrderService) BuildStatusNotification(orderID uint, status string) (*OrderStatusNotification, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	receiver, err := s.orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = order.Status
	}
	return &OrderStatusNotification{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Receiver:    receiver,
		Status:      status,
		TotalAmount: order.TotalAmount,
	}, nil
}

// transition 以当前状态为条件写入目标状态；条件不满足说明已被并发修改
func (s *OrderService) transition(order *models.Order, target string) error {
	now := s.now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusPaid:
		updates["paid_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}
	var affected int64
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		affected, err = s.orderRepo.WithTx(tx).UpdateStatus(order.ID, order.Status, target, updates)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	from := order.Status
	order.Status = target
	order.UpdatedAt = now
	switch target {
	case constants.OrderStatusPaid:
		order.PaidAt = &now
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"from", from,
		"to", target,
	)
	if _, err := enqueueOrderStatusNotify(s.orderRepo, s.queueClient, order.ID, target); err != nil {
		logger.Warnw("order_enqueue_status_notify_failed",
			"order_id", order.ID,
			"status", target,
			"error", err,
		)
	}
	return nil
}

func (s *OrderService) isExpiredPending(order *models.Order) bool {
	if order == nil || order.Status != constants.OrderStatusPending || order.ExpiresAt == nil {
		return false
	}
	return !order.ExpiresAt.After(s.now())
}
