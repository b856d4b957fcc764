package cache

import (
	"context"
	"testing"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/models"
)

func TestDisabledCacheIsPassThrough(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	if err := SetProduct(ctx, &models.Product{Slug: "tote"}, 0); err != nil {
		t.Fatalf("set on disabled cache should be a no-op, got %v", err)
	}
	product, hit, err := GetProduct(ctx, "tote")
	if err != nil || hit || product != nil {
		t.Fatalf("disabled cache should miss, got hit=%v err=%v", hit, err)
	}
	state, hit, err := GetUserAuthState(ctx, 1)
	if err != nil || hit || state != nil {
		t.Fatalf("disabled auth state cache should miss, got hit=%v err=%v", hit, err)
	}
	if err := DelProduct(ctx, "tote", ""); err != nil {
		t.Fatalf("del on disabled cache should be a no-op, got %v", err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	prev := redisPrefix
	redisPrefix = "kasuwa"
	t.Cleanup(func() { redisPrefix = prev })

	if got := buildKey(productSlugKey(" Tote-Bag ")); got != "kasuwa:catalog:product:tote-bag" {
		t.Fatalf("product key mismatch, got %s", got)
	}
	if got := buildKey(userAuthStateKey(7)); got != "kasuwa:auth:user:7" {
		t.Fatalf("auth key mismatch, got %s", got)
	}
	if got := buildKey("  "); got != "kasuwa" {
		t.Fatalf("empty key should map to prefix, got %s", got)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should produce nil state")
	}
	state := BuildUserAuthState(&models.User{ID: 3, Status: "active", TokenVersion: 2, IsStaff: true})
	if state.UserID != 3 || state.TokenVersion != 2 || !state.IsStaff {
		t.Fatalf("unexpected state %+v", state)
	}
}
