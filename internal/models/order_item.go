package models

import (
	"time"
)

// OrderItem 订单项表（单价与小计为下单时快照）
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID  uint      `gorm:"index;not null" json:"product_id"`                         // 商品ID
	VariantID  *uint     `gorm:"index" json:"variant_id"`                                  // 规格ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                 // 数量
	Price      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // 单价快照
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计快照
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                  // 创建时间

	Product *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"` // 关联商品
	Variant *ProductVariant `gorm:"foreignKey:VariantID;constraint:OnDelete:RESTRICT" json:"variant,omitempty"` // 关联规格
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
