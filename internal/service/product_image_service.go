package service

import (
	"net/url"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"

	"gorm.io/gorm"
)

// ProductImageService 商品图片服务（图片仅保存 URL）
type ProductImageService struct {
	imageRepo   repository.ProductImageRepository
	productRepo repository.ProductRepository
}

// NewProductImageService 创建商品图片服务
func NewProductImageService(imageRepo repository.ProductImageRepository, productRepo repository.ProductRepository) *ProductImageService {
	return &ProductImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
	}
}

func (s *ProductImageService) primaryBinding() exclusiveFlagBinding {
	return exclusiveFlagBinding{
		lock: func(tx *gorm.DB, ownerID uint) ([]uint, error) {
			return s.imageRepo.WithTx(tx).LockByProduct(ownerID)
		},
		owner: func(tx *gorm.DB, recordID uint) (uint, bool, error) {
			image, err := s.imageRepo.WithTx(tx).GetByID(recordID)
			if err != nil || image == nil {
				return 0, false, err
			}
			return image.ProductID, true, nil
		},
		set: func(tx *gorm.DB, ownerID, recordID uint) error {
			return s.imageRepo.WithTx(tx).SetPrimary(ownerID, recordID)
		},
		notFound: ErrImageNotFound,
	}
}

// List 商品图片列表
func (s *ProductImageService) List(productID uint) ([]models.ProductImage, error) {
	if _, err := s.loadProduct(productID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByProduct(productID)
}

// Add 新增图片；商品首张图片自动成为主图
func (s *ProductImageService) Add(productID uint, rawURL string, isPrimary bool) (*models.ProductImage, error) {
	product, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}
	imageURL, err := normalizeImageURL(rawURL)
	if err != nil {
		return nil, err
	}
	image := &models.ProductImage{
		ProductID: productID,
		URL:       imageURL,
		CreatedAt: time.Now(),
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		imageRepo := s.imageRepo.WithTx(tx)
		if _, err := imageRepo.LockByProduct(productID); err != nil {
			return err
		}
		count, err := imageRepo.CountByProduct(productID)
		if err != nil {
			return err
		}
		if err := imageRepo.Create(image); err != nil {
			return err
		}
		if isPrimary || count == 0 {
			if err := applyExclusiveFlag(tx, s.primaryBinding(), productID, image.ID); err != nil {
				return err
			}
			image.IsPrimary = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateProductCache(product.Slug)
	return image, nil
}

// SetPrimary 设为主图（同一事务内清除该商品其余主图标记）
func (s *ProductImageService) SetPrimary(productID, imageID uint) (*models.ProductImage, error) {
	if err := setExclusiveFlag(s.primaryBinding(), productID, imageID); err != nil {
		return nil, err
	}
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	invalidateProductCacheByID(s.productRepo, productID)
	return image, nil
}

// SetPrimaryByImage 按图片 ID 设为所属商品主图
func (s *ProductImageService) SetPrimaryByImage(imageID uint) (*models.ProductImage, error) {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return s.SetPrimary(image.ProductID, imageID)
}

// Delete 删除图片；删除主图时由最早的剩余图片接替
func (s *ProductImageService) Delete(imageID uint) error {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrImageNotFound
	}
	productID := image.ProductID
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		imageRepo := s.imageRepo.WithTx(tx)
		// 主图标记以加锁后的读取为准
		if _, err := imageRepo.LockByProduct(productID); err != nil {
			return err
		}
		locked, err := imageRepo.GetByID(imageID)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrImageNotFound
		}
		if err := imageRepo.Delete(imageID); err != nil {
			return err
		}
		if !locked.IsPrimary {
			return nil
		}
		remaining, err := imageRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return nil
		}
		return imageRepo.SetPrimary(productID, remaining[0].ID)
	})
	if err != nil {
		return err
	}
	invalidateProductCacheByID(s.productRepo, productID)
	return nil
}

func (s *ProductImageService) loadProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func normalizeImageURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidImageURL
	}
	if strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//") {
		return trimmed, nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", ErrInvalidImageURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrInvalidImageURL
	}
	return trimmed, nil
}
