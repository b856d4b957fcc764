package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/queue"
	"github.com/kasuwa-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db           *gorm.DB
	userRepo     *repository.GormUserRepository
	addressRepo  *repository.GormAddressRepository
	categoryRepo *repository.GormCategoryRepository
	productRepo  *repository.GormProductRepository
	variantRepo  *repository.GormProductVariantRepository
	imageRepo    *repository.GormProductImageRepository
	orderRepo    *repository.GormOrderRepository

	addresses  *AddressService
	categories *CategoryService
	products   *ProductService
	variants   *ProductVariantService
	images     *ProductImageService
	orders     *OrderService
	allocator  *OrderNumberAllocator
}

func setupServiceTest(t *testing.T) *serviceFixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(models.SQLiteDSNWithForeignKeys(dsn)), models.NewGormConfig(false))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
		_ = sqlDB.Close()
	})

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	f := &serviceFixture{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		addressRepo:  repository.NewAddressRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		productRepo:  repository.NewProductRepository(db),
		variantRepo:  repository.NewProductVariantRepository(db),
		imageRepo:    repository.NewProductImageRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
	}
	f.allocator = NewOrderNumberAllocator(f.orderRepo, constants.OrderNumberMaxAttempts)
	f.addresses = NewAddressService(f.addressRepo, f.orderRepo)
	f.categories = NewCategoryService(f.categoryRepo, f.productRepo)
	f.products = NewProductService(f.productRepo, f.categoryRepo, f.orderRepo, 60)
	f.variants = NewProductVariantService(f.variantRepo, f.productRepo, f.orderRepo)
	f.images = NewProductImageService(f.imageRepo, f.productRepo)
	f.orders = NewOrderService(f.orderRepo, f.addressRepo, f.productRepo, f.variantRepo, f.allocator, queueClient, constants.OrderPaymentExpireMinutes)
	return f
}

func (f *serviceFixture) mustUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Status: constants.UserStatusActive}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *serviceFixture) mustAddress(t *testing.T, userID uint, street string) *models.Address {
	t.Helper()
	address, err := f.addresses.CreateAddress(userID, AddressInput{
		StreetAddress: street,
		City:          "Ikeja",
		State:         "la",
		PhoneNumber:   "+2348000000000",
	})
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func (f *serviceFixture) mustCategory(t *testing.T, name string, parentID *uint) *models.Category {
	t.Helper()
	category, err := f.categories.Create(CategoryInput{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func (f *serviceFixture) mustProduct(t *testing.T, categoryID uint, name, price string) *models.Product {
	t.Helper()
	product, err := f.products.Create(ProductInput{
		CategoryID:    categoryID,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		Weight:        decimal.RequireFromString("0.50"),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *serviceFixture) mustVariant(t *testing.T, productID uint, value, adjustment string) *models.ProductVariant {
	t.Helper()
	variant, err := f.variants.Create(productID, VariantInput{
		Name:            "Size",
		Value:           value,
		PriceAdjustment: decimal.RequireFromString(adjustment),
		StockQuantity:   5,
	})
	if err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

// setOrderStatus 直接改写状态，用于构造状态机测试前置条件
func (f *serviceFixture) setOrderStatus(t *testing.T, orderID uint, status string) {
	t.Helper()
	if err := f.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error; err != nil {
		t.Fatalf("set order status failed: %v", err)
	}
}

func (f *serviceFixture) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return count
}

// sequenceGenerator 依次返回给定标识，用尽后重复最后一个
func sequenceGenerator(values ...string) (IdentifierGenerator, func() int) {
	var mu sync.Mutex
	calls := 0
	gen := func(int) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		idx := calls
		if idx >= len(values) {
			idx = len(values) - 1
		}
		calls++
		return values[idx], nil
	}
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}
	return gen, count
}

func uintPtr(v uint) *uint {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
