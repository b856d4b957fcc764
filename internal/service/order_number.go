package service

import (
	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"

	"gorm.io/gorm"
)

// OrderNumberAllocator 订单号分配器：10 位大写字母数字，唯一索引为最终依据
type OrderNumberAllocator struct {
	orderRepo repository.OrderRepository
	allocator identifierAllocator
}

// NewOrderNumberAllocator 创建订单号分配器，maxAttempts <= 0 时使用默认上限
func NewOrderNumberAllocator(orderRepo repository.OrderRepository, maxAttempts int) *OrderNumberAllocator {
	if maxAttempts <= 0 {
		maxAttempts = constants.OrderNumberMaxAttempts
	}
	a := &OrderNumberAllocator{orderRepo: orderRepo}
	a.allocator = identifierAllocator{
		name:        "order_number",
		length:      constants.OrderNumberLength,
		maxAttempts: maxAttempts,
		generate:    randomIdentifier,
		exists: func(db *gorm.DB, value string) (bool, error) {
			return a.orderRepo.WithTx(db).ExistsByOrderNumber(value)
		},
		exhausted: ErrOrderNumberExhausted,
	}
	return a
}

// WithGenerator 替换随机源
func (a *OrderNumberAllocator) WithGenerator(generate IdentifierGenerator) *OrderNumberAllocator {
	if generate != nil {
		a.allocator.generate = generate
	}
	return a
}

// Allocate 返回一个当前未被占用的订单号
func (a *OrderNumberAllocator) Allocate() (string, error) {
	return a.allocator.allocate(models.DB)
}

// Reserve 在事务 tx 内分配订单号并调用 insert 落库，唯一冲突时在保存点内重试
func (a *OrderNumberAllocator) Reserve(tx *gorm.DB, insert func(sp *gorm.DB, orderNumber string) error) (string, error) {
	return a.allocator.reserve(tx, insert)
}
