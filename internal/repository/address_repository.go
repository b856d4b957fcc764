package repository

import (
	"github.com/kasuwa-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	GetByID(id uint) (*models.Address, error)
	GetByIDForUpdate(id uint) (*models.Address, error)
	ListByUser(userID uint) ([]models.Address, error)
	GetDefault(userID uint) (*models.Address, error)
	CountByUser(userID uint) (int64, error)
	CountDefault(userID uint) (int64, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id uint) error
	SetDefault(userID, addressID uint) error
	LockByUser(userID uint) ([]uint, error)
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// GetByID 根据 ID 获取地址
func (r *GormAddressRepository) GetByID(id uint) (*models.Address, error) {
	return firstOrNil[models.Address](r.db, id)
}

// GetByIDForUpdate 加行锁获取地址（sqlite 忽略锁子句）
func (r *GormAddressRepository) GetByIDForUpdate(id uint) (*models.Address, error) {
	return firstOrNil[models.Address](r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ListByUser 用户地址列表（默认地址优先）
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, id DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetDefault 获取用户默认地址
func (r *GormAddressRepository) GetDefault(userID uint) (*models.Address, error) {
	return firstOrNil[models.Address](r.db.Where("user_id = ? AND is_default = ?", userID, true))
}

// CountByUser 统计用户地址数
func (r *GormAddressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDefault 统计用户默认地址数
func (r *GormAddressRepository) CountDefault(userID uint) (int64, error) {
	return countExclusiveFlag(r.db, AddressDefaultScope, userID)
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormAddressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

// Delete 删除地址
func (r *GormAddressRepository) Delete(id uint) error {
	return r.db.Delete(&models.Address{}, id).Error
}

// SetDefault 将地址设为默认并清除该用户其余默认标记
func (r *GormAddressRepository) SetDefault(userID, addressID uint) error {
	return setExclusiveFlag(r.db, AddressDefaultScope, userID, addressID)
}

// LockByUser 锁住该用户全部地址行，返回按 id 升序的地址 ID
func (r *GormAddressRepository) LockByUser(userID uint) ([]uint, error) {
	return lockExclusiveOwner(r.db, AddressDefaultScope, userID)
}
