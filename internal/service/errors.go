package service

import (
	"errors"
	"fmt"
)

// 通用业务错误
var (
	ErrNotFound             = errors.New("not found")
	ErrOwnershipMismatch    = errors.New("record belongs to another owner")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrEntityInUse          = errors.New("record is referenced by orders")
	ErrOrderNumberExhausted = errors.New("order number allocation exhausted, check order.number_max_attempts")
	ErrSKUExhausted         = errors.New("product sku allocation exhausted")
)

// 资源不存在
var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrAddressNotFound  = fmt.Errorf("address %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrVariantNotFound  = fmt.Errorf("product variant %w", ErrNotFound)
	ErrImageNotFound    = fmt.Errorf("product image %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
)

// 资源被订单引用，禁止删除
var (
	ErrAddressInUse  = fmt.Errorf("address: %w", ErrEntityInUse)
	ErrProductInUse  = fmt.Errorf("product: %w", ErrEntityInUse)
	ErrVariantInUse  = fmt.Errorf("product variant: %w", ErrEntityInUse)
	ErrCategoryInUse = errors.New("category still has products")
)

// 下单校验错误
var (
	ErrInvalidShippingAddress = errors.New("shipping address is not owned by the user")
	ErrInvalidLineItem        = errors.New("invalid order line item")
	ErrVariantMismatch        = errors.New("variant does not belong to product")
	ErrInvalidShippingCost    = errors.New("shipping cost must not be negative")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
)

// 商品目录错误
var (
	ErrSlugExists      = errors.New("slug already exists")
	ErrInvalidSlug     = errors.New("slug cannot be derived")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStock    = errors.New("stock quantity must not be negative")
	ErrInvalidWeight   = errors.New("weight must not be negative")
	ErrCategoryCycle   = errors.New("category cannot be its own ancestor")
	ErrInvalidImageURL = errors.New("invalid image url")
	ErrNameEmpty       = errors.New("name is required")
	ErrVariantInvalid  = errors.New("variant name and value are required")
)

// 地址错误
var (
	ErrInvalidState   = errors.New("invalid state code")
	ErrAddressInvalid = errors.New("invalid address")
)

// 账号错误
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRoleInvalid        = errors.New("invalid role")
	ErrInvalidUserStatus  = errors.New("invalid user status")
)
