package models

import "time"

// Address 收货地址表（同一用户至多一个默认地址）
type Address struct {
	ID            uint      `gorm:"primarykey" json:"id"`                             // 主键
	UserID        uint      `gorm:"index;not null" json:"user_id"`                    // 所属用户
	StreetAddress string    `gorm:"type:varchar(255);not null" json:"street_address"` // 街道地址
	City          string    `gorm:"type:varchar(100);not null" json:"city"`           // 城市
	State         string    `gorm:"type:varchar(2);not null" json:"state"`            // 州代码
	PhoneNumber   string    `gorm:"type:varchar(20);not null" json:"phone_number"`    // 联系电话
	IsDefault     bool      `gorm:"not null;default:false;index" json:"is_default"`   // 是否默认
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                       // 更新时间

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
