package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kasuwa-shop/internal/models"
)

func primaryImageIDs(t *testing.T, f *serviceFixture, productID uint) []uint {
	t.Helper()
	var ids []uint
	if err := f.db.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_primary = ?", productID, true).
		Pluck("id", &ids).Error; err != nil {
		t.Fatalf("query primary images failed: %v", err)
	}
	return ids
}

func TestProductImagePrimaryLifecycle(t *testing.T) {
	f := setupServiceTest(t)
	category := f.mustCategory(t, "Art", nil)
	product := f.mustProduct(t, category.ID, "Bronze Head", "500.00")

	first, err := f.images.Add(product.ID, "https://cdn.example.com/a.jpg", false)
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}
	if !first.IsPrimary {
		t.Fatalf("first image should become primary")
	}
	second, err := f.images.Add(product.ID, "/uploads/b.jpg", false)
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}
	third, err := f.images.Add(product.ID, "https://cdn.example.com/c.jpg", true)
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}
	if got := primaryImageIDs(t, f, product.ID); len(got) != 1 || got[0] != third.ID {
		t.Fatalf("third image should be the only primary, got %v", got)
	}

	if _, err := f.images.SetPrimaryByImage(second.ID); err != nil {
		t.Fatalf("set primary failed: %v", err)
	}
	if got := primaryImageIDs(t, f, product.ID); len(got) != 1 || got[0] != second.ID {
		t.Fatalf("second image should be the only primary, got %v", got)
	}

	detail, err := f.products.GetAdminByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if detail.PrimaryImage != "/uploads/b.jpg" {
		t.Fatalf("unexpected primary image: %s", detail.PrimaryImage)
	}

	if err := f.images.Delete(second.ID); err != nil {
		t.Fatalf("delete image failed: %v", err)
	}
	if got := primaryImageIDs(t, f, product.ID); len(got) != 1 || got[0] != first.ID {
		t.Fatalf("oldest remaining image should be promoted, got %v", got)
	}
	if err := f.images.Delete(second.ID); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestProductImageDeleteRacingSetPrimaryKeepsOnePrimary(t *testing.T) {
	f := setupServiceTest(t)
	category := f.mustCategory(t, "Textiles", nil)

	for round := 0; round < 20; round++ {
		product := f.mustProduct(t, category.ID, fmt.Sprintf("Aso Oke %d", round), "120.00")
		var ids [3]uint
		for i := range ids {
			image, err := f.images.Add(product.ID, fmt.Sprintf("https://cdn.example.com/%d-%d.jpg", round, i), false)
			if err != nil {
				t.Fatalf("add image failed: %v", err)
			}
			ids[i] = image.ID
		}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = f.images.Delete(ids[0])
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = f.images.SetPrimary(product.ID, ids[2])
		}()
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				t.Fatalf("round %d: unexpected error %v", round, err)
			}
		}
		if got := primaryImageIDs(t, f, product.ID); len(got) != 1 || got[0] != ids[2] {
			t.Fatalf("round %d: want only %d primary, got %v", round, ids[2], got)
		}
	}
}

func TestProductImageSetPrimaryRejectsOtherProduct(t *testing.T) {
	f := setupServiceTest(t)
	category := f.mustCategory(t, "Art", nil)
	a := f.mustProduct(t, category.ID, "Mask", "50.00")
	b := f.mustProduct(t, category.ID, "Stool", "80.00")
	imageA, err := f.images.Add(a.ID, "https://cdn.example.com/mask.jpg", false)
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}
	imageB, err := f.images.Add(b.ID, "https://cdn.example.com/stool.jpg", false)
	if err != nil {
		t.Fatalf("add image failed: %v", err)
	}

	if _, err := f.images.SetPrimary(b.ID, imageA.ID); !errors.Is(err, ErrOwnershipMismatch) {
		t.Fatalf("expected ErrOwnershipMismatch, got %v", err)
	}
	if got := primaryImageIDs(t, f, b.ID); len(got) != 1 || got[0] != imageB.ID {
		t.Fatalf("product b primary should be untouched, got %v", got)
	}
	if _, err := f.images.SetPrimary(a.ID, 9999); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestNormalizeImageURL(t *testing.T) {
	valid := []string{"https://cdn.example.com/x.png", "http://img.example.com/a/b.jpg", "/media/products/1.jpg"}
	for _, raw := range valid {
		if _, err := normalizeImageURL(raw); err != nil {
			t.Fatalf("url %q should be valid: %v", raw, err)
		}
	}
	invalid := []string{"", "ftp://example.com/x.png", "//evil.example.com/x.png", "not a url", "javascript:alert(1)"}
	for _, raw := range invalid {
		if _, err := normalizeImageURL(raw); !errors.Is(err, ErrInvalidImageURL) {
			t.Fatalf("url %q should be rejected, got %v", raw, err)
		}
	}
}
