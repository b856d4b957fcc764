package service

import (
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariantService 商品规格服务
type ProductVariantService struct {
	variantRepo repository.ProductVariantRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewProductVariantService 创建商品规格服务
func NewProductVariantService(variantRepo repository.ProductVariantRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *ProductVariantService {
	return &ProductVariantService{
		variantRepo: variantRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// VariantInput 规格写入参数
type VariantInput struct {
	Name            string
	Value           string
	PriceAdjustment decimal.Decimal
	StockQuantity   int
}

// List 商品规格列表（附带实际价格）
func (s *ProductVariantService) List(productID uint) ([]models.ProductVariant, error) {
	product, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	for i := range variants {
		variants[i].Price = models.NewMoneyFromDecimal(variants[i].EffectivePrice(product.Price.Decimal))
	}
	return variants, nil
}

// Create 新增规格
func (s *ProductVariantService) Create(productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeVariantInput(input)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	variant := &models.ProductVariant{
		ProductID:       productID,
		Name:            normalized.Name,
		Value:           normalized.Value,
		PriceAdjustment: models.NewMoneyFromDecimal(normalized.PriceAdjustment),
		StockQuantity:   normalized.StockQuantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	variant.Price = models.NewMoneyFromDecimal(variant.EffectivePrice(product.Price.Decimal))
	invalidateProductCache(product.Slug)
	return variant, nil
}

// Update 更新规格
func (s *ProductVariantService) Update(variantID uint, input VariantInput) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	normalized, err := normalizeVariantInput(input)
	if err != nil {
		return nil, err
	}
	product, err := s.loadProduct(variant.ProductID)
	if err != nil {
		return nil, err
	}
	variant.Name = normalized.Name
	variant.Value = normalized.Value
	variant.PriceAdjustment = models.NewMoneyFromDecimal(normalized.PriceAdjustment)
	variant.StockQuantity = normalized.StockQuantity
	variant.UpdatedAt = time.Now()
	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	variant.Price = models.NewMoneyFromDecimal(variant.EffectivePrice(product.Price.Decimal))
	invalidateProductCache(product.Slug)
	return variant, nil
}

// Delete 删除规格；被订单项引用时拒绝
func (s *ProductVariantService) Delete(variantID uint) error {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		refs, err := s.orderRepo.WithTx(tx).CountItemsByVariant(variantID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrVariantInUse
		}
		return s.variantRepo.WithTx(tx).Delete(variantID)
	})
	if err != nil {
		return err
	}
	invalidateProductCacheByID(s.productRepo, variant.ProductID)
	return nil
}

func (s *ProductVariantService) loadProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func normalizeVariantInput(input VariantInput) (VariantInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Value = strings.TrimSpace(input.Value)
	if input.Name == "" || input.Value == "" {
		return VariantInput{}, ErrVariantInvalid
	}
	if input.StockQuantity < 0 {
		return VariantInput{}, ErrInvalidStock
	}
	return input, nil
}
