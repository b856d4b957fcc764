package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品表
type Product struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                // 主键
	SKU           string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"sku"`     // 商品编码（自动生成，不可修改）
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`              // 名称
	Slug          string    `gorm:"uniqueIndex;not null" json:"slug"`                    // 唯一标识
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`                   // 分类ID
	Description   string    `gorm:"type:text" json:"description"`                        // 描述
	Price         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 价格
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`            // 库存
	Weight        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"weight"` // 重量（kg）
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	PrimaryImage  string    `gorm:"-" json:"primary_image"`                              // 主图（仅结构，不写入数据库）
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                          // 更新时间

	// 关联
	Category *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"` // 分类信息
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`   // 规格列表
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`     // 图片列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ResolvePrimaryImage 根据已加载的图片填充主图地址
func (p *Product) ResolvePrimaryImage() {
	if p == nil {
		return
	}
	p.PrimaryImage = ""
	for _, image := range p.Images {
		if image.IsPrimary {
			p.PrimaryImage = image.URL
			return
		}
	}
}

// ProductVariant 商品规格表
type ProductVariant struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                          // 主键
	ProductID       uint      `gorm:"index;not null" json:"product_id"`                              // 商品ID
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`                        // 规格名（如 Size）
	Value           string    `gorm:"type:varchar(100);not null" json:"value"`                       // 规格值（如 XL）
	PriceAdjustment Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_adjustment"` // 价格调整（可为负）
	StockQuantity   int       `gorm:"not null;default:0" json:"stock_quantity"`                      // 库存
	Price           Money     `gorm:"-" json:"price"`                                                // 实际价格（仅结构，不写入数据库）
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                    // 更新时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// EffectivePrice 规格实际价格 = 商品价格 + 价格调整
func (v ProductVariant) EffectivePrice(base decimal.Decimal) decimal.Decimal {
	return base.Add(v.PriceAdjustment.Decimal)
}

// ProductImage 商品图片表（同一商品至多一张主图）
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                           // 主键
	ProductID uint      `gorm:"index;not null" json:"product_id"`               // 商品ID
	URL       string    `gorm:"type:varchar(500);not null" json:"image"`        // 图片地址
	IsPrimary bool      `gorm:"not null;default:false;index" json:"is_primary"` // 是否主图
	CreatedAt time.Time `gorm:"index" json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
