package shared

import (
	"github.com/kasuwa-shop/internal/authz"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/service"
)

// NotFoundErrorRules 各实体不存在的映射（具体实体优先于通用 ErrNotFound）
var NotFoundErrorRules = []MappedError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrAddressNotFound, Code: response.CodeNotFound, Key: "error.address_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrVariantNotFound, Code: response.CodeNotFound, Key: "error.variant_not_found"},
	{Target: service.ErrImageNotFound, Code: response.CodeNotFound, Key: "error.image_not_found"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

// AccountErrorRules 账号相关错误映射
var AccountErrorRules = []MappedError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrInvalidUserStatus, Code: response.CodeBadRequest, Key: "error.user_status_invalid"},
	{Target: service.ErrRoleInvalid, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: authz.ErrUnknownRole, Code: response.CodeBadRequest, Key: "error.role_invalid"},
}

// AddressErrorRules 地址相关错误映射
var AddressErrorRules = []MappedError{
	{Target: service.ErrInvalidState, Code: response.CodeBadRequest, Key: "error.state_invalid"},
	{Target: service.ErrAddressInvalid, Code: response.CodeBadRequest, Key: "error.address_invalid"},
	{Target: service.ErrAddressInUse, Code: response.CodeConflict, Key: "error.address_in_use"},
	{Target: service.ErrOwnershipMismatch, Code: response.CodeForbidden, Key: "error.ownership_mismatch"},
}

// CatalogErrorRules 商品目录相关错误映射
var CatalogErrorRules = []MappedError{
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrInvalidSlug, Code: response.CodeBadRequest, Key: "error.slug_invalid"},
	{Target: service.ErrNameEmpty, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrInvalidPrice, Code: response.CodeBadRequest, Key: "error.price_invalid"},
	{Target: service.ErrInvalidStock, Code: response.CodeBadRequest, Key: "error.stock_invalid"},
	{Target: service.ErrInvalidWeight, Code: response.CodeBadRequest, Key: "error.weight_invalid"},
	{Target: service.ErrCategoryCycle, Code: response.CodeBadRequest, Key: "error.category_cycle"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
	{Target: service.ErrProductInUse, Code: response.CodeConflict, Key: "error.product_in_use"},
	{Target: service.ErrVariantInUse, Code: response.CodeConflict, Key: "error.variant_in_use"},
	{Target: service.ErrVariantInvalid, Code: response.CodeBadRequest, Key: "error.variant_invalid"},
	{Target: service.ErrInvalidImageURL, Code: response.CodeBadRequest, Key: "error.image_url_invalid"},
	{Target: service.ErrOwnershipMismatch, Code: response.CodeBadRequest, Key: "error.ownership_mismatch"},
	{Target: service.ErrSKUExhausted, Code: response.CodeInternal, Key: "error.sku_exhausted"},
}

// OrderErrorRules 订单相关错误映射
var OrderErrorRules = []MappedError{
	{Target: service.ErrInvalidShippingAddress, Code: response.CodeBadRequest, Key: "error.shipping_address_invalid"},
	{Target: service.ErrInvalidLineItem, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrVariantMismatch, Code: response.CodeBadRequest, Key: "error.variant_mismatch"},
	{Target: service.ErrInvalidShippingCost, Code: response.CodeBadRequest, Key: "error.shipping_cost_invalid"},
	{Target: service.ErrInvalidPaymentMethod, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrInvalidTransition, Code: response.CodeConflict, Key: "error.order_transition_invalid"},
	{Target: service.ErrOwnershipMismatch, Code: response.CodeForbidden, Key: "error.ownership_mismatch"},
	{Target: service.ErrOrderNumberExhausted, Code: response.CodeInternal, Key: "error.order_number_exhausted"},
}
