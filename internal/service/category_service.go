package service

import (
	"errors"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"

	"gorm.io/gorm"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{repo: repo, productRepo: productRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name     string
	Slug     string
	ParentID *uint
}

// List 获取全部分类
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// ListRoots 获取顶级分类（含直接子分类）
func (s *CategoryService) ListRoots() ([]models.Category, error) {
	return s.repo.ListRoots()
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetByID 根据 ID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	slug, err := resolveSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(slug, nil); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if _, err := s.GetByID(*input.ParentID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	category := models.Category{
		Name:      name,
		Slug:      slug,
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(&category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return &category, nil
}

// Update 更新分类；父分类不能是自身或其后代
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	slug, err := resolveSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(slug, &id); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrCategoryCycle
		}
		if _, err := s.GetByID(*input.ParentID); err != nil {
			return nil, err
		}
		descendants, err := s.repo.ListDescendantIDs(id)
		if err != nil {
			return nil, err
		}
		for _, descendantID := range descendants {
			if descendantID == *input.ParentID {
				return nil, ErrCategoryCycle
			}
		}
	}

	category.Name = name
	category.Slug = slug
	category.ParentID = input.ParentID
	category.UpdatedAt = time.Now()
	if err := s.repo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除分类及其子树；子树内仍有商品时拒绝
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ids, err := repo.ListDescendantIDs(id)
		if err != nil {
			return err
		}
		count, err := s.productRepo.WithTx(tx).CountByCategoryIDs(ids)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
		return repo.DeleteByIDs(ids)
	})
}

// ResolveSubtreeIDs 返回 slug 对应分类及其后代 ID
func (s *CategoryService) ResolveSubtreeIDs(slug string) ([]uint, error) {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDescendantIDs(category.ID)
}

func (s *CategoryService) ensureSlugAvailable(slug string, excludeID *uint) error {
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
