package models

import "time"

// Category 分类表（支持父子层级，删除父分类时级联删除子分类）
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`                   // 主键
	Name      string    `gorm:"type:varchar(100);not null" json:"name"` // 名称
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`       // 唯一标识
	ParentID  *uint     `gorm:"index" json:"parent_id"`                 // 父分类
	CreatedAt time.Time `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                             // 更新时间

	Children []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"children,omitempty"` // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
