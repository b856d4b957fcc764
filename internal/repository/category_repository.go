package repository

import (
	"github.com/kasuwa-shop/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	ListRoots() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	CountBySlug(slug string, excludeID *uint) (int64, error)
	ListDescendantIDs(id uint) ([]uint, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	DeleteByIDs(ids []uint) error
	WithTx(tx *gorm.DB) *GormCategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) *GormCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListRoots 顶级分类（含直接子分类）
func (r *GormCategoryRepository) ListRoots() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Preload("Children", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC, id ASC")
	}).Where("parent_id IS NULL").Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	return firstOrNil[models.Category](r.db, id)
}

// GetBySlug 根据 slug 获取分类（含直接子分类）
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	return firstOrNil[models.Category](r.db.Preload("Children").Where("slug = ?", slug))
}

// CountBySlug 统计 slug 数量
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListDescendantIDs 返回分类自身及全部后代 ID（广度优先）
func (r *GormCategoryRepository) ListDescendantIDs(id uint) ([]uint, error) {
	ids := []uint{id}
	frontier := []uint{id}
	seen := map[uint]struct{}{id: {}}
	for len(frontier) > 0 {
		var children []uint
		if err := r.db.Model(&models.Category{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			ids = append(ids, child)
			frontier = append(frontier, child)
		}
	}
	return ids, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Omit("Children").Save(category).Error
}

// DeleteByIDs 删除分类子树（外键同时声明级联删除）
func (r *GormCategoryRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Category{}).Error
}
