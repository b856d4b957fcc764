package models

import (
	"time"
)

// Order 订单表（金额在创建时冻结，仅通过状态流转修改）
type Order struct {
	ID                uint       `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNumber       string     `gorm:"type:varchar(10);uniqueIndex;not null" json:"order_number"`  // 订单编号
	UserID            uint       `gorm:"index;not null" json:"user_id"`                              // 用户ID
	ShippingAddressID uint       `gorm:"index;not null" json:"shipping_address_id"`                  // 收货地址ID
	Status            string     `gorm:"type:varchar(20);index;not null" json:"status"`              // 订单状态
	PaymentMethod     string     `gorm:"type:varchar(10);not null" json:"payment_method"`            // 支付方式
	ShippingCost      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"` // 运费
	TotalAmount       Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 订单总额
	ExpiresAt         *time.Time `gorm:"index" json:"expires_at"`                                    // 待支付过期时间
	PaidAt            *time.Time `gorm:"index" json:"paid_at"`                                       // 支付时间
	CancelledAt       *time.Time `gorm:"index" json:"cancelled_at"`                                  // 取消时间
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt         time.Time  `gorm:"index" json:"updated_at"`                                    // 更新时间

	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`                       // 订单项
	User            *User       `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`                                     // 下单用户
	ShippingAddress *Address    `gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:RESTRICT" json:"shipping_address,omitempty"` // 收货地址
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
