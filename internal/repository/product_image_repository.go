package repository

import (
	"github.com/kasuwa-shop/internal/models"

	"gorm.io/gorm"
)

// ProductImageRepository 商品图片数据访问接口
type ProductImageRepository interface {
	ListByProduct(productID uint) ([]models.ProductImage, error)
	GetByID(id uint) (*models.ProductImage, error)
	CountByProduct(productID uint) (int64, error)
	CountPrimary(productID uint) (int64, error)
	Create(image *models.ProductImage) error
	Delete(id uint) error
	SetPrimary(productID, imageID uint) error
	LockByProduct(productID uint) ([]uint, error)
	WithTx(tx *gorm.DB) *GormProductImageRepository
}

// GormProductImageRepository GORM 实现
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository 创建商品图片仓库
func NewProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductImageRepository) WithTx(tx *gorm.DB) *GormProductImageRepository {
	if tx == nil {
		return r
	}
	return &GormProductImageRepository{db: tx}
}

// ListByProduct 商品图片列表（主图优先）
func (r *GormProductImageRepository) ListByProduct(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Order("is_primary DESC, id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetByID 根据 ID 获取图片
func (r *GormProductImageRepository) GetByID(id uint) (*models.ProductImage, error) {
	return firstOrNil[models.ProductImage](r.db, id)
}

// CountByProduct 统计商品图片数
func (r *GormProductImageRepository) CountByProduct(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ProductImage{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPrimary 统计商品主图数
func (r *GormProductImageRepository) CountPrimary(productID uint) (int64, error) {
	return countExclusiveFlag(r.db, ProductImagePrimaryScope, productID)
}

// Create 创建图片
func (r *GormProductImageRepository) Create(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// Delete 删除图片
func (r *GormProductImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductImage{}, id).Error
}

// SetPrimary 设为主图并清除该商品其余主图标记
func (r *GormProductImageRepository) SetPrimary(productID, imageID uint) error {
	return setExclusiveFlag(r.db, ProductImagePrimaryScope, productID, imageID)
}

// LockByProduct 锁住该商品全部图片行，返回按 id 升序的图片 ID
func (r *GormProductImageRepository) LockByProduct(productID uint) ([]uint, error) {
	return lockExclusiveOwner(r.db, ProductImagePrimaryScope, productID)
}
