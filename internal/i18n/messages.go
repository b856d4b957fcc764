package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: messagesEN,
	LocaleZH: messagesZH,
}

var messagesEN = map[string]string{
	"error.bad_request":              "Invalid request parameters",
	"error.unauthorized":             "Unauthorized",
	"error.forbidden":                "Permission denied",
	"error.staff_required":           "Staff account required",
	"error.not_found":                "Resource not found",
	"error.internal":                 "Internal server error",
	"error.rate_limited":             "Too many attempts, please retry in %d seconds",
	"error.rate_limit_unavailable":   "Rate limiter unavailable",
	"error.jwt_secret_missing":       "Authentication is not configured",
	"error.auth_header_missing":      "Missing Authorization header",
	"error.auth_header_invalid":      "Invalid Authorization header",
	"error.token_invalid":            "Invalid or expired token",
	"error.token_revoked":            "Token has been revoked, please sign in again",
	"error.user_id_invalid":          "Invalid user id",
	"error.user_id_type_invalid":     "Invalid user id type",
	"error.user_not_found":           "User not found",
	"error.user_disabled":            "Account is disabled",
	"error.user_status_invalid":      "Invalid user status",
	"error.email_invalid":            "Invalid email address",
	"error.email_exists":             "Email is already registered",
	"error.login_invalid":            "Incorrect email or password",
	"error.password_required":        "Password is required",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a number",
	"error.password_require_special": "Password must contain a special character",
	"error.password_weak":            "Password is too weak",
	"error.password_old_invalid":     "Current password is incorrect",
	"error.role_invalid":             "Unknown role",
	"error.address_not_found":        "Address not found",
	"error.address_invalid":          "Street address, city and phone number are required",
	"error.address_in_use":           "Address is used by existing orders",
	"error.state_invalid":            "Invalid state code",
	"error.ownership_mismatch":       "Record belongs to another owner",
	"error.category_not_found":       "Category not found",
	"error.category_cycle":           "A category cannot be its own ancestor",
	"error.category_in_use":          "Category still has products",
	"error.slug_exists":              "Slug already exists",
	"error.slug_invalid":             "Slug cannot be derived from the name",
	"error.name_required":            "Name is required",
	"error.price_invalid":            "Price must not be negative",
	"error.stock_invalid":            "Stock quantity must not be negative",
	"error.weight_invalid":           "Weight must not be negative",
	"error.product_not_found":        "Product not found",
	"error.product_in_use":           "Product is referenced by orders",
	"error.sku_exhausted":            "Unable to allocate a product SKU",
	"error.variant_not_found":        "Product variant not found",
	"error.variant_invalid":          "Variant name and value are required",
	"error.variant_in_use":           "Variant is referenced by orders",
	"error.variant_mismatch":         "Variant does not belong to the product",
	"error.image_not_found":          "Product image not found",
	"error.image_url_invalid":        "Invalid image URL",
	"error.order_not_found":          "Order not found",
	"error.order_item_invalid":       "Invalid order item",
	"error.shipping_address_invalid": "Shipping address is not valid for this account",
	"error.shipping_cost_invalid":    "Shipping cost must not be negative",
	"error.payment_method_invalid":   "Invalid payment method",
	"error.order_status_invalid":     "Invalid order status",
	"error.order_transition_invalid": "Order status change is not allowed",
	"error.order_number_exhausted":   "Unable to allocate an order number",
	"error.order_create_failed":      "Failed to create order",
	"error.save_failed":              "Failed to save",
	"error.delete_failed":            "Failed to delete",
	"error.query_failed":             "Failed to load data",
}

var messagesZH = map[string]string{
	"error.bad_request":              "请求参数错误",
	"error.unauthorized":             "未登录或登录已失效",
	"error.forbidden":                "无权限访问",
	"error.staff_required":           "需要员工账号",
	"error.not_found":                "资源不存在",
	"error.internal":                 "服务器内部错误",
	"error.rate_limited":             "尝试次数过多，请 %d 秒后重试",
	"error.rate_limit_unavailable":   "限流服务不可用",
	"error.jwt_secret_missing":       "鉴权未配置",
	"error.auth_header_missing":      "缺少 Authorization 请求头",
	"error.auth_header_invalid":      "Authorization 请求头格式错误",
	"error.token_invalid":            "Token 无效或已过期",
	"error.token_revoked":            "Token 已失效，请重新登录",
	"error.user_id_invalid":          "用户 ID 无效",
	"error.user_id_type_invalid":     "用户 ID 类型错误",
	"error.user_not_found":           "用户不存在",
	"error.user_disabled":            "账号已被禁用",
	"error.user_status_invalid":      "用户状态无效",
	"error.email_invalid":            "邮箱格式错误",
	"error.email_exists":             "邮箱已注册",
	"error.login_invalid":            "邮箱或密码错误",
	"error.password_required":        "请输入密码",
	"error.password_min_length":      "密码长度至少 %d 位",
	"error.password_require_upper":   "密码需包含大写字母",
	"error.password_require_lower":   "密码需包含小写字母",
	"error.password_require_number":  "密码需包含数字",
	"error.password_require_special": "密码需包含特殊字符",
	"error.password_weak":            "密码强度不足",
	"error.password_old_invalid":     "当前密码错误",
	"error.role_invalid":             "角色不存在",
	"error.address_not_found":        "地址不存在",
	"error.address_invalid":          "街道地址、城市与电话不能为空",
	"error.address_in_use":           "地址已被订单引用",
	"error.state_invalid":            "州代码无效",
	"error.ownership_mismatch":       "记录不属于当前所有者",
	"error.category_not_found":       "分类不存在",
	"error.category_cycle":           "分类不能成为自身的上级",
	"error.category_in_use":          "分类下仍有商品",
	"error.slug_exists":              "Slug 已存在",
	"error.slug_invalid":             "无法从名称生成 Slug",
	"error.name_required":            "名称不能为空",
	"error.price_invalid":            "价格不能为负数",
	"error.stock_invalid":            "库存不能为负数",
	"error.weight_invalid":           "重量不能为负数",
	"error.product_not_found":        "商品不存在",
	"error.product_in_use":           "商品已被订单引用",
	"error.sku_exhausted":            "商品编码生成失败",
	"error.variant_not_found":        "商品规格不存在",
	"error.variant_invalid":          "规格名与规格值不能为空",
	"error.variant_in_use":           "规格已被订单引用",
	"error.variant_mismatch":         "规格不属于该商品",
	"error.image_not_found":          "商品图片不存在",
	"error.image_url_invalid":        "图片地址无效",
	"error.order_not_found":          "订单不存在",
	"error.order_item_invalid":       "订单项无效",
	"error.shipping_address_invalid": "收货地址不属于当前账号",
	"error.shipping_cost_invalid":    "运费不能为负数",
	"error.payment_method_invalid":   "支付方式无效",
	"error.order_status_invalid":     "订单状态无效",
	"error.order_transition_invalid": "当前订单状态不允许该操作",
	"error.order_number_exhausted":   "订单号生成失败",
	"error.order_create_failed":      "创建订单失败",
	"error.save_failed":              "保存失败",
	"error.delete_failed":            "删除失败",
	"error.query_failed":             "查询失败",
}
