//go:build integration
// +build integration

package repository

import (
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), models.NewGormConfig(false))
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.Product{},
		&models.Category{},
		&models.Address{},
		&models.User{},
	}
	if err := db.Migrator().DropTable(cleanupModels...); err != nil {
		t.Fatalf("drop tables failed: %v", err)
	}
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
	return db
}

func TestPostgresOrderNumberUniqueAndSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	user := mustCreateUser(t, db, "pg@example.com")
	address := mustCreateAddress(t, db, user.ID, true)
	category := mustCreateCategory(t, db, "pg-cat", nil)
	mustCreateProduct(t, db, category.ID, "PGPROD01", "Postgres Lamp", "19.99", true)

	repo := NewOrderRepository(db)
	first := &models.Order{
		OrderNumber:       "PGORDER001",
		UserID:            user.ID,
		ShippingAddressID: address.ID,
		Status:            constants.OrderStatusPending,
		PaymentMethod:     constants.PaymentMethodCrypto,
		TotalAmount:       models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
	}
	if err := repo.Create(first, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	dup := *first
	dup.ID = 0
	if err := repo.Create(&dup, nil); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("want duplicated key got %v", err)
	}

	products, total, err := NewProductRepository(db).List(ProductListFilter{Search: "LAMP"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("ILIKE search should match case-insensitively, got %d", total)
	}
}

func TestPostgresConcurrentSetDefaultKeepsSingleDefault(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	user := mustCreateUser(t, db, "race@example.com")
	repo := NewAddressRepository(db)

	for round := 0; round < 25; round++ {
		current := mustCreateAddress(t, db, user.ID, false)
		if err := repo.SetDefault(user.ID, current.ID); err != nil {
			t.Fatalf("seed default failed: %v", err)
		}
		x := mustCreateAddress(t, db, user.ID, false)
		y := mustCreateAddress(t, db, user.ID, false)

		start := make(chan struct{})
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, target := range []uint{x.ID, y.ID} {
			wg.Add(1)
			go func(i int, target uint) {
				defer wg.Done()
				<-start
				errs[i] = db.Transaction(func(tx *gorm.DB) error {
					return repo.WithTx(tx).SetDefault(user.ID, target)
				})
			}(i, target)
		}
		close(start)
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				t.Fatalf("round %d: set default failed: %v", round, err)
			}
		}
		count, err := repo.CountDefault(user.ID)
		if err != nil {
			t.Fatalf("count default failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("round %d: default count want 1 got %d", round, count)
		}
	}
}
