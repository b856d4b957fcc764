package models

import (
	"strings"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultStaffPassword = "kasuwa123"

// InitDefaultStaff 初始化默认超级管理员账号（已存在员工时仅确保其为超级管理员）
func InitDefaultStaff(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@kasuwa.local"
	}

	var existing User
	err := DB.Where("email = ?", email).Limit(1).Find(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing.ID != 0 {
		if !existing.IsStaff || !existing.IsSuperuser {
			if err := DB.Model(&existing).Updates(map[string]interface{}{"is_staff": true, "is_superuser": true}).Error; err != nil {
				logger.Warnw("ensure_default_staff_super_failed", "email", email, "error", err)
			}
		}
		return &existing, nil
	}

	var staffCount int64
	if err := DB.Model(&User{}).Where("is_staff = ?", true).Count(&staffCount).Error; err != nil {
		return nil, err
	}
	if staffCount > 0 {
		return nil, nil
	}

	if password == "" {
		password = defaultStaffPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := User{
		Email:        email,
		Username:     "admin",
		PasswordHash: string(hash),
		IsVerified:   true,
		IsStaff:      true,
		IsSuperuser:  true,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&staff).Error; err != nil {
		return nil, err
	}

	if password == defaultStaffPassword {
		logger.Warnw("default_staff_created_with_default_password", "email", email)
		logger.Warnw("default_staff_password_change_required", "email", email)
	} else {
		logger.Warnw("default_staff_created", "email", email, "password_hidden", true)
	}
	return &staff, nil
}
