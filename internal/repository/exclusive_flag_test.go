package repository

import (
	"errors"
	"testing"

	"github.com/kasuwa-shop/internal/models"

	"gorm.io/gorm"
)

func TestAddressSetDefaultClearsSiblings(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewAddressRepository(db)
	user := mustCreateUser(t, db, "a@example.com")
	x := mustCreateAddress(t, db, user.ID, true)
	y := mustCreateAddress(t, db, user.ID, false)

	if err := repo.SetDefault(user.ID, y.ID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}

	gotX, _ := repo.GetByID(x.ID)
	gotY, _ := repo.GetByID(y.ID)
	if gotX.IsDefault {
		t.Fatalf("address x should no longer be default")
	}
	if !gotY.IsDefault {
		t.Fatalf("address y should be default")
	}
	count, err := repo.CountDefault(user.ID)
	if err != nil {
		t.Fatalf("count default failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("default count want 1 got %d", count)
	}
}

func TestAddressSetDefaultIsIdempotent(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewAddressRepository(db)
	user := mustCreateUser(t, db, "a@example.com")
	x := mustCreateAddress(t, db, user.ID, true)

	for i := 0; i < 2; i++ {
		if err := repo.SetDefault(user.ID, x.ID); err != nil {
			t.Fatalf("set default round %d failed: %v", i, err)
		}
	}
	count, _ := repo.CountDefault(user.ID)
	if count != 1 {
		t.Fatalf("default count want 1 got %d", count)
	}
}

func TestAddressSetDefaultForeignOwner(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewAddressRepository(db)
	owner := mustCreateUser(t, db, "owner@example.com")
	other := mustCreateUser(t, db, "other@example.com")
	mine := mustCreateAddress(t, db, other.ID, true)
	theirs := mustCreateAddress(t, db, owner.ID, false)

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).SetDefault(other.ID, theirs.ID)
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want record not found got %v", err)
	}
	got, _ := repo.GetByID(mine.ID)
	if !got.IsDefault {
		t.Fatalf("rolled back transaction should keep original default")
	}
}

func TestProductImageSetPrimaryScopedByProduct(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductImageRepository(db)
	category := mustCreateCategory(t, db, "phones", nil)
	p1 := mustCreateProduct(t, db, category.ID, "AAAA1111", "Phone", "10.00", true)
	p2 := mustCreateProduct(t, db, category.ID, "BBBB2222", "Case", "2.00", true)

	img1 := &models.ProductImage{ProductID: p1.ID, URL: "https://cdn.example.com/1.png", IsPrimary: true}
	img2 := &models.ProductImage{ProductID: p1.ID, URL: "https://cdn.example.com/2.png"}
	other := &models.ProductImage{ProductID: p2.ID, URL: "https://cdn.example.com/3.png", IsPrimary: true}
	for _, img := range []*models.ProductImage{img1, img2, other} {
		if err := repo.Create(img); err != nil {
			t.Fatalf("create image failed: %v", err)
		}
	}

	if err := repo.SetPrimary(p1.ID, img2.ID); err != nil {
		t.Fatalf("set primary failed: %v", err)
	}
	got1, _ := repo.GetByID(img1.ID)
	got2, _ := repo.GetByID(img2.ID)
	gotOther, _ := repo.GetByID(other.ID)
	if got1.IsPrimary || !got2.IsPrimary {
		t.Fatalf("primary flag not moved: img1=%v img2=%v", got1.IsPrimary, got2.IsPrimary)
	}
	if !gotOther.IsPrimary {
		t.Fatalf("other product primary image should be untouched")
	}
}

func TestLockExclusiveOwnerScopesToOwner(t *testing.T) {
	db := setupRepositoryTestDB(t)
	user := mustCreateUser(t, db, "lock@example.com")
	other := mustCreateUser(t, db, "other@example.com")
	x := mustCreateAddress(t, db, user.ID, true)
	y := mustCreateAddress(t, db, user.ID, false)
	mustCreateAddress(t, db, other.ID, true)

	err := db.Transaction(func(tx *gorm.DB) error {
		ids, err := lockExclusiveOwner(tx, AddressDefaultScope, user.ID)
		if err != nil {
			return err
		}
		if len(ids) != 2 || ids[0] != x.ID || ids[1] != y.ID {
			t.Fatalf("locked ids want [%d %d] got %v", x.ID, y.ID, ids)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("lock owner failed: %v", err)
	}
}
