package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
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
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func mustCreateAddress(t *testing.T, db *gorm.DB, userID uint, isDefault bool) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:        userID,
		StreetAddress: "12 Allen Avenue",
		City:          "Ikeja",
		State:         "LA",
		PhoneNumber:   "+2348000000000",
		IsDefault:     isDefault,
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func mustCreateCategory(t *testing.T, db *gorm.DB, slug string, parentID *uint) *models.Category {
	t.Helper()
	category := &models.Category{Name: slug, Slug: slug, ParentID: parentID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func mustCreateProduct(t *testing.T, db *gorm.DB, categoryID uint, sku, name, price string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:           sku,
		Name:          name,
		Slug:          strings.ToLower(sku),
		CategoryID:    categoryID,
		Description:   name + " description",
		Price:         models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockQuantity: 10,
		IsActive:      active,
	}
	if err := db.Omit("Category", "Variants", "Images").Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		// gorm 对零值 bool 使用列默认值，需显式更新
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}
