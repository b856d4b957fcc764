package service

import (
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"

	"gorm.io/gorm"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
	orderRepo   repository.OrderRepository
}

// NewAddressService 创建收货地址服务
func NewAddressService(addressRepo repository.AddressRepository, orderRepo repository.OrderRepository) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
	}
}

// AddressInput 地址写入参数（IsDefault 为 nil 表示不修改）
type AddressInput struct {
	StreetAddress string
	City          string
	State         string
	PhoneNumber   string
	IsDefault     *bool
}

func (s *AddressService) defaultBinding() exclusiveFlagBinding {
	return exclusiveFlagBinding{
		lock: func(tx *gorm.DB, ownerID uint) ([]uint, error) {
			return s.addressRepo.WithTx(tx).LockByUser(ownerID)
		},
		owner: func(tx *gorm.DB, recordID uint) (uint, bool, error) {
			address, err := s.addressRepo.WithTx(tx).GetByID(recordID)
			if err != nil || address == nil {
				return 0, false, err
			}
			return address.UserID, true, nil
		},
		set: func(tx *gorm.DB, ownerID, recordID uint) error {
			return s.addressRepo.WithTx(tx).SetDefault(ownerID, recordID)
		},
		notFound: ErrAddressNotFound,
	}
}

// ListAddresses 用户地址列表（默认地址在前）
func (s *AddressService) ListAddresses(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// GetAddress 获取用户自己的地址
func (s *AddressService) GetAddress(userID, addressID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// GetDefault 获取默认地址，不存在时返回 ErrAddressNotFound
func (s *AddressService) GetDefault(userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetDefault(userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// CreateAddress 新增地址；用户首个地址自动成为默认地址
func (s *AddressService) CreateAddress(userID uint, input AddressInput) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	normalized, err := normalizeAddressInput(input)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	address := &models.Address{
		UserID:        userID,
		StreetAddress: normalized.StreetAddress,
		City:          normalized.City,
		State:         normalized.State,
		PhoneNumber:   normalized.PhoneNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		addressRepo := s.addressRepo.WithTx(tx)
		if _, err := addressRepo.LockByUser(userID); err != nil {
			return err
		}
		count, err := addressRepo.CountByUser(userID)
		if err != nil {
			return err
		}
		makeDefault := count == 0 || (normalized.IsDefault != nil && *normalized.IsDefault)
		if err := addressRepo.Create(address); err != nil {
			return err
		}
		if makeDefault {
			if err := applyExclusiveFlag(tx, s.defaultBinding(), userID, address.ID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress 更新用户自己的地址
func (s *AddressService) UpdateAddress(userID, addressID uint, input AddressInput) (*models.Address, error) {
	normalized, err := normalizeAddressInput(input)
	if err != nil {
		return nil, err
	}
	var updated *models.Address
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		addressRepo := s.addressRepo.WithTx(tx)
		if _, err := addressRepo.LockByUser(userID); err != nil {
			return err
		}
		address, err := addressRepo.GetByIDForUpdate(addressID)
		if err != nil {
			return err
		}
		if address == nil || address.UserID != userID {
			return ErrAddressNotFound
		}
		address.StreetAddress = normalized.StreetAddress
		address.City = normalized.City
		address.State = normalized.State
		address.PhoneNumber = normalized.PhoneNumber
		address.UpdatedAt = time.Now()
		if normalized.IsDefault != nil && !*normalized.IsDefault {
			address.IsDefault = false
		}
		if err := addressRepo.Update(address); err != nil {
			return err
		}
		if normalized.IsDefault != nil && *normalized.IsDefault {
			if err := applyExclusiveFlag(tx, s.defaultBinding(), userID, address.ID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		updated = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAddress 删除地址；被订单引用时拒绝，删除默认地址后由最新地址接替
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		addressRepo := s.addressRepo.WithTx(tx)
		if _, err := addressRepo.LockByUser(userID); err != nil {
			return err
		}
		address, err := addressRepo.GetByIDForUpdate(addressID)
		if err != nil {
			return err
		}
		if address == nil || address.UserID != userID {
			return ErrAddressNotFound
		}
		refs, err := s.orderRepo.WithTx(tx).CountByAddress(addressID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrAddressInUse
		}
		if err := addressRepo.Delete(addressID); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		remaining, err := addressRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return nil
		}
		logger.Debugw("address_default_promoted",
			"user_id", userID,
			"deleted_address_id", addressID,
			"address_id", remaining[0].ID,
		)
		return addressRepo.SetDefault(userID, remaining[0].ID)
	})
}

// SetDefault 将地址设为默认地址（同一事务内清除其余默认标记）
func (s *AddressService) SetDefault(userID, addressID uint) (*models.Address, error) {
	if err := setExclusiveFlag(s.defaultBinding(), userID, addressID); err != nil {
		return nil, err
	}
	return s.GetAddress(userID, addressID)
}

func normalizeAddressInput(input AddressInput) (AddressInput, error) {
	normalized := AddressInput{
		StreetAddress: strings.TrimSpace(input.StreetAddress),
		City:          strings.TrimSpace(input.City),
		State:         strings.ToUpper(strings.TrimSpace(input.State)),
		PhoneNumber:   strings.TrimSpace(input.PhoneNumber),
		IsDefault:     input.IsDefault,
	}
	if normalized.StreetAddress == "" || normalized.City == "" || normalized.PhoneNumber == "" {
		return AddressInput{}, ErrAddressInvalid
	}
	if !constants.IsNigerianState(normalized.State) {
		return AddressInput{}, ErrInvalidState
	}
	return normalized, nil
}
