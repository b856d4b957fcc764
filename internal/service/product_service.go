package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/cache"
	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	orderRepo    repository.OrderRepository
	skuAllocator identifierAllocator
	cacheTTL     time.Duration
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, orderRepo repository.OrderRepository, cacheTTLSeconds int) *ProductService {
	s := &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		cacheTTL:     time.Duration(cacheTTLSeconds) * time.Second,
	}
	s.skuAllocator = identifierAllocator{
		name:        "product_sku",
		length:      constants.ProductSKULength,
		maxAttempts: constants.ProductSKUMaxAttempts,
		generate:    randomIdentifier,
		exists: func(db *gorm.DB, value string) (bool, error) {
			return s.repo.WithTx(db).ExistsBySKU(value)
		},
		exhausted: ErrSKUExhausted,
	}
	return s
}

// WithSKUGenerator 替换 SKU 随机源
func (s *ProductService) WithSKUGenerator(generate IdentifierGenerator) *ProductService {
	if generate != nil {
		s.skuAllocator.generate = generate
	}
	return s
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID    uint
	Name          string
	Slug          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Weight        decimal.Decimal
	IsActive      *bool
}

// PublicProductQuery 前台商品列表查询
type PublicProductQuery struct {
	Page         int
	PageSize     int
	CategorySlug string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
}

// ListPublic 获取公开商品列表（仅上架商品，分类按子树匹配）
func (s *ProductService) ListPublic(query PublicProductQuery) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		Search:       query.Search,
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
		OnlyActive:   true,
		WithCategory: true,
	}
	if slug := strings.ToLower(strings.TrimSpace(query.CategorySlug)); slug != "" {
		category, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, 0, err
		}
		if category == nil {
			return []models.Product{}, 0, nil
		}
		ids, err := s.categoryRepo.ListDescendantIDs(category.ID)
		if err != nil {
			return nil, 0, err
		}
		filter.CategoryIDs = ids
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	decorateProducts(products)
	return products, total, nil
}

// ListAdmin 获取后台商品列表（含下架商品）
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	filter.WithCategory = true
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	decorateProducts(products)
	return products, total, nil
}

// GetPublicBySlug 获取公开商品详情（优先读取缓存）
func (s *ProductService) GetPublicBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrProductNotFound
	}
	if cached, hit, err := cache.GetProduct(ctx, slug); err != nil {
		logger.Warnw("product_cache_get_failed", "slug", slug, "error", err)
	} else if hit {
		return cached, nil
	}

	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	decorateProduct(product)
	if err := cache.SetProduct(ctx, product, s.cacheTTL); err != nil {
		logger.Warnw("product_cache_set_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	decorateProduct(product)
	return product, nil
}

// Create 创建商品（生成 SKU，slug 为空时由名称派生）
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	normalized, err := normalizeProductInput(input)
	if err != nil {
		return nil, err
	}
	slug, err := resolveSlug(normalized.Slug, normalized.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(normalized.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &models.Product{
		Name:          normalized.Name,
		Slug:          slug,
		CategoryID:    normalized.CategoryID,
		Description:   normalized.Description,
		Price:         models.NewMoneyFromDecimal(normalized.Price),
		StockQuantity: normalized.StockQuantity,
		Weight:        models.NewMoneyFromDecimal(normalized.Weight),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.CountBySlug(slug, nil)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
		if _, err := s.skuAllocator.reserve(tx, func(sp *gorm.DB, sku string) error {
			product.ID = 0
			product.SKU = sku
			return s.repo.WithTx(sp).Create(product)
		}); err != nil {
			return err
		}
		// default:true 标签会忽略 false 零值，需显式回写
		if normalized.IsActive != nil && !*normalized.IsActive {
			product.IsActive = false
			return repo.Update(product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("product_created",
		"product_id", product.ID,
		"sku", product.SKU,
		"slug", product.Slug,
	)
	return s.GetAdminByID(product.ID)
}

// Update 更新商品；SKU 不可修改，价格变更不影响已有订单
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	normalized, err := normalizeProductInput(input)
	if err != nil {
		return nil, err
	}
	previousSlug := product.Slug
	slug := product.Slug
	if normalized.Slug != "" {
		slug, err = resolveSlug(normalized.Slug, normalized.Name)
		if err != nil {
			return nil, err
		}
	}
	count, err := s.repo.CountBySlug(slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}
	if err := s.ensureCategory(normalized.CategoryID); err != nil {
		return nil, err
	}

	product.Name = normalized.Name
	product.Slug = slug
	product.CategoryID = normalized.CategoryID
	product.Description = normalized.Description
	product.Price = models.NewMoneyFromDecimal(normalized.Price)
	product.StockQuantity = normalized.StockQuantity
	product.Weight = models.NewMoneyFromDecimal(normalized.Weight)
	if normalized.IsActive != nil {
		product.IsActive = *normalized.IsActive
	}
	product.UpdatedAt = time.Now()
	product.Category = nil
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	invalidateProductCache(previousSlug, product.Slug)
	return s.GetAdminByID(product.ID)
}

// Delete 删除商品（被订单引用时拒绝，规格与图片级联删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		refs, err := s.orderRepo.WithTx(tx).CountItemsByProduct(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrProductInUse
		}
		return s.repo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	invalidateProductCache(product.Slug)
	return nil
}

func (s *ProductService) ensureCategory(categoryID uint) error {
	if categoryID == 0 {
		return ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func normalizeProductInput(input ProductInput) (ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return ProductInput{}, ErrNameEmpty
	}
	if input.Price.IsNegative() {
		return ProductInput{}, ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return ProductInput{}, ErrInvalidStock
	}
	if input.Weight.IsNegative() {
		return ProductInput{}, ErrInvalidWeight
	}
	return input, nil
}

// decorateProduct 填充主图与规格实际价格
func decorateProduct(product *models.Product) {
	if product == nil {
		return
	}
	product.ResolvePrimaryImage()
	for i := range product.Variants {
		product.Variants[i].Price = models.NewMoneyFromDecimal(product.Variants[i].EffectivePrice(product.Price.Decimal))
	}
}

func decorateProducts(products []models.Product) {
	for i := range products {
		decorateProduct(&products[i])
	}
}

// invalidateProductCache 失效商品详情缓存，失败只记录日志
func invalidateProductCache(slugs ...string) {
	if err := cache.DelProduct(context.Background(), slugs...); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "slugs", slugs, "error", err)
	}
}

// invalidateProductCacheByID 通过商品 ID 失效缓存
func invalidateProductCacheByID(repo repository.ProductRepository, productID uint) {
	product, err := repo.GetByID(productID)
	if err != nil || product == nil {
		return
	}
	invalidateProductCache(product.Slug)
}
