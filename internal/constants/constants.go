package constants

// 订单状态常量
const (
	OrderStatusPending    = "PENDING"
	OrderStatusPaid       = "PAID"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// OrderStatuses 全部订单状态（按流转顺序）
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 支付方式常量
const (
	PaymentMethodFiat   = "FIAT"
	PaymentMethodCrypto = "CRYPTO"
)

// 订单号与 SKU 生成常量
const (
	OrderNumberLength         = 10
	OrderNumberMaxAttempts    = 10
	ProductSKULength          = 8
	ProductSKUMaxAttempts     = 10
	IdentifierAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	OrderPaymentExpireMinutes = 30
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 尼日利亚州代码（含联邦首都区 FC）
var NigerianStateCodes = map[string]string{
	"AB": "Abia",
	"FC": "Federal Capital Territory",
	"AD": "Adamawa",
	"AK": "Akwa Ibom",
	"AN": "Anambra",
	"BA": "Bauchi",
	"BY": "Bayelsa",
	"BE": "Benue",
	"BO": "Borno",
	"CR": "Cross River",
	"DE": "Delta",
	"EB": "Ebonyi",
	"ED": "Edo",
	"EK": "Ekiti",
	"EN": "Enugu",
	"GO": "Gombe",
	"IM": "Imo",
	"JI": "Jigawa",
	"KD": "Kaduna",
	"KN": "Kano",
	"KT": "Katsina",
	"KE": "Kebbi",
	"KO": "Kogi",
	"KW": "Kwara",
	"LA": "Lagos",
	"NA": "Nasarawa",
	"NI": "Niger",
	"OG": "Ogun",
	"ON": "Ondo",
	"OS": "Osun",
	"OY": "Oyo",
	"PL": "Plateau",
	"RI": "Rivers",
	"SO": "Sokoto",
	"TA": "Taraba",
	"YO": "Yobe",
	"ZA": "Zamfara",
}

// IsNigerianState 判断是否为合法州代码
func IsNigerianState(code string) bool {
	_, ok := NigerianStateCodes[code]
	return ok
}

// 队列常量
const (
	QueueDefault           = "default"
	TaskOrderStatusNotify  = "order:status_notify"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "kasuwa"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}

// 权限角色常量
const (
	RoleCatalogManager = "catalog_manager"
	RoleOrderManager   = "order_manager"
	RoleViewer         = "viewer"
)
