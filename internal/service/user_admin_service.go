package service

import (
	"context"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/cache"
	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"
)

// UserAdminService 管理端用户服务
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService 创建管理端用户服务
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// ListUsers 用户列表
func (s *UserAdminService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.userRepo.List(filter)
}

// GetUser 用户详情
func (s *UserAdminService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetStaff 设置员工标记（超级管理员始终保留员工身份）
func (s *UserAdminService) SetStaff(id uint, isStaff bool) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.IsSuperuser {
		isStaff = true
	}
	if user.IsStaff == isStaff {
		return user, nil
	}
	user.IsStaff = isStaff
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// SetStatus 启用或禁用用户；禁用会使已签发 Token 失效
func (s *UserAdminService) SetStatus(id uint, status string) (*models.User, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, ErrInvalidUserStatus
	}
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if status == constants.UserStatusDisabled {
		user.TokenVersion++
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}
