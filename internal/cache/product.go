package cache

import (
	"context"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/models"
)

const defaultProductCacheTTL = 5 * time.Minute

func productSlugKey(slug string) string {
	return "catalog:product:" + strings.ToLower(strings.TrimSpace(slug))
}

// GetProduct 读取公开商品详情缓存
func GetProduct(ctx context.Context, slug string) (*models.Product, bool, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, false, nil
	}
	product, err := loadJSON[models.Product](ctx, productSlugKey(slug))
	return product, product != nil, err
}

// SetProduct 写入公开商品详情缓存
func SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || product.Slug == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultProductCacheTTL
	}
	return storeJSON(ctx, productSlugKey(product.Slug), product, ttl)
}

// DelProduct 失效商品详情缓存（slug 变更时需同时传入旧 slug）
func DelProduct(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if strings.TrimSpace(slug) == "" {
			continue
		}
		keys = append(keys, productSlugKey(slug))
	}
	return drop(ctx, keys...)
}
