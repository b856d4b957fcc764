package models

import (
	"time"
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                         // 主键
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`            // 邮箱
	Username     string     `gorm:"type:varchar(150);default:''" json:"username"` // 用户名
	PasswordHash string     `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	PhoneNumber  string     `gorm:"type:varchar(20);default:''" json:"phone_number"`
	FirstName    string     `gorm:"type:varchar(150);default:''" json:"first_name"`
	LastName     string     `gorm:"type:varchar(150);default:''" json:"last_name"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`    // 是否已验证（用户不可自行修改）
	IsStaff      bool       `gorm:"not null;default:false;index" json:"is_staff"` // 是否为后台员工
	IsSuperuser  bool       `gorm:"not null;default:false" json:"is_superuser"`   // 超级管理员（跳过 RBAC）
	Status       string     `gorm:"default:'active'" json:"status"`               // 账号状态
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                  // Token 版本（用于全量失效）
	LastLoginAt  *time.Time `json:"last_login_at"`                                // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`                      // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
