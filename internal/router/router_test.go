package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/provider"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type routerFixture struct {
	engine    *gin.Engine
	container *provider.Container
}

func setupRouterTest(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:router_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(models.SQLiteDSNWithForeignKeys(dsn)), models.NewGormConfig(false))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
		_ = sqlDB.Close()
	})
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		UserJWT: config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		Order:   config.OrderConfig{PaymentExpireMinutes: 30, NumberMaxAttempts: 10},
		Security: config.SecurityConfig{
			LoginRateLimit: config.LoginRateLimitConfig{WindowSeconds: 60, MaxAttempts: 5},
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
	}
	container := provider.NewContainer(cfg)
	return &routerFixture{
		engine:    SetupRouter(cfg, container),
		container: container,
	}
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) apiEnvelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status want 200 got %d", method, path, w.Code)
	}
	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: unmarshal envelope failed: %v (%s)", method, path, err, w.Body.String())
	}
	return env
}

func (f *routerFixture) register(t *testing.T, email string) (uint, string) {
	t.Helper()
	env := f.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	if env.StatusCode != 0 {
		t.Fatalf("register %s failed: %d %s", email, env.StatusCode, env.Msg)
	}
	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal register data failed: %v", err)
	}
	return data.User.ID, data.Token
}

func (f *routerFixture) seedProduct(t *testing.T) (*models.Product, *models.ProductVariant) {
	t.Helper()
	category, err := f.container.CategoryService.Create(service.CategoryInput{Name: "Clothing"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := f.container.ProductService.Create(service.ProductInput{
		CategoryID:    category.ID,
		Name:          "Ankara Shirt",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: 5,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant, err := f.container.ProductVariantService.Create(product.ID, service.VariantInput{
		Name:            "Size",
		Value:           "L",
		PriceAdjustment: decimal.RequireFromString("2.50"),
	})
	if err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return product, variant
}

func TestHealth(t *testing.T) {
	f := setupRouterTest(t)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	f := setupRouterTest(t)
	_, token := f.register(t, "Ada@Example.com")

	env := f.do(t, http.MethodGet, "/api/v1/me", token, nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), `"ada@example.com"`) {
		t.Fatalf("unexpected /me response: %d %s", env.StatusCode, env.Data)
	}
	if strings.Contains(string(env.Data), "password") {
		t.Fatalf("password hash must not be serialized: %s", env.Data)
	}

	if env := f.do(t, http.MethodGet, "/api/v1/me", "", nil); env.StatusCode != 401 {
		t.Fatalf("missing token want 401 got %d", env.StatusCode)
	}
	if env := f.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "ada@example.com", "password": "secret123"}); env.StatusCode != 409 {
		t.Fatalf("duplicate email want 409 got %d", env.StatusCode)
	}
	if env := f.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "weak@example.com", "password": "short"}); env.StatusCode != 400 || !strings.Contains(env.Msg, "8") {
		t.Fatalf("weak password want 400 with min length message, got %d %s", env.StatusCode, env.Msg)
	}
	if env := f.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ada@example.com", "password": "wrong-pass1"}); env.StatusCode != 401 {
		t.Fatalf("wrong password want 401 got %d", env.StatusCode)
	}
	if env := f.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ada@example.com", "password": "secret123"}); env.StatusCode != 0 {
		t.Fatalf("login failed: %d %s", env.StatusCode, env.Msg)
	}
}

func TestPasswordChangeRevokesToken(t *testing.T) {
	f := setupRouterTest(t)
	_, token := f.register(t, "bola@example.com")

	env := f.do(t, http.MethodPut, "/api/v1/me/password", token, gin.H{
		"old_password": "secret123",
		"new_password": "newsecret456",
	})
	if env.StatusCode != 0 {
		t.Fatalf("change password failed: %d %s", env.StatusCode, env.Msg)
	}
	if env := f.do(t, http.MethodGet, "/api/v1/me", token, nil); env.StatusCode != 401 {
		t.Fatalf("old token want 401 got %d", env.StatusCode)
	}
}

func TestAddressAndOrderFlow(t *testing.T) {
	f := setupRouterTest(t)
	_, token := f.register(t, "chidi@example.com")
	product, variant := f.seedProduct(t)

	if env := f.do(t, http.MethodPost, "/api/v1/addresses", token, gin.H{
		"street_address": "1 Broad Street",
		"city":           "Lagos",
		"state":          "XX",
		"phone_number":   "+2348000000000",
	}); env.StatusCode != 400 {
		t.Fatalf("invalid state want 400 got %d", env.StatusCode)
	}

	env := f.do(t, http.MethodPost, "/api/v1/addresses", token, gin.H{
		"street_address": "1 Broad Street",
		"city":           "Lagos",
		"state":          "LA",
		"phone_number":   "+2348000000000",
	})
	if env.StatusCode != 0 {
		t.Fatalf("create address failed: %d %s", env.StatusCode, env.Msg)
	}
	var address models.Address
	if err := json.Unmarshal(env.Data, &address); err != nil {
		t.Fatalf("unmarshal address failed: %v", err)
	}
	if !address.IsDefault {
		t.Fatalf("first address should become default")
	}

	orderBody := gin.H{
		"shipping_address_id": address.ID,
		"shipping_cost":       "5.00",
		"payment_method":      "fiat",
		"items": []gin.H{
			{"product_id": product.ID, "variant_id": variant.ID, "quantity": 3},
		},
	}
	env = f.do(t, http.MethodPost, "/api/v1/orders", token, orderBody)
	if env.StatusCode != 0 {
		t.Fatalf("place order failed: %d %s", env.StatusCode, env.Msg)
	}
	var order struct {
		ID          uint   `json:"id"`
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
		Items       []struct {
			Price      string `json:"price"`
			TotalPrice string `json:"total_price"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("unmarshal order failed: %v", err)
	}
	if !regexp.MustCompile(`^[A-Z0-9]{10}$`).MatchString(order.OrderNumber) {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	if order.TotalAmount != "42.50" || order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected order: total=%s status=%s", order.TotalAmount, order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Price != "12.50" || order.Items[0].TotalPrice != "37.50" {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	if env := f.do(t, http.MethodPost, "/api/v1/orders", token, gin.H{
		"shipping_address_id": address.ID,
		"payment_method":      "CASH",
		"items":               []gin.H{{"product_id": product.ID, "quantity": 1}},
	}); env.StatusCode != 400 {
		t.Fatalf("invalid payment method want 400 got %d", env.StatusCode)
	}

	env = f.do(t, http.MethodGet, "/api/v1/orders/by-number/"+order.OrderNumber, token, nil)
	if env.StatusCode != 0 {
		t.Fatalf("get by number failed: %d %s", env.StatusCode, env.Msg)
	}
	env = f.do(t, http.MethodGet, "/api/v1/orders/pending", token, nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), order.OrderNumber) {
		t.Fatalf("pending list should include the order: %d %s", env.StatusCode, env.Data)
	}

	// 他人订单视为不存在
	_, otherToken := f.register(t, "dayo@example.com")
	if env := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), otherToken, nil); env.StatusCode != 404 {
		t.Fatalf("foreign order want 404 got %d", env.StatusCode)
	}
	if env := f.do(t, http.MethodPost, "/api/v1/orders", otherToken, orderBody); env.StatusCode != 400 {
		t.Fatalf("foreign shipping address want 400 got %d", env.StatusCode)
	}

	if env := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/addresses/%d", address.ID), token, nil); env.StatusCode != 409 {
		t.Fatalf("address used by order want 409 got %d", env.StatusCode)
	}

	cancelPath := fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID)
	if env := f.do(t, http.MethodPost, cancelPath, token, nil); env.StatusCode != 0 {
		t.Fatalf("cancel failed: %d %s", env.StatusCode, env.Msg)
	}
	if env := f.do(t, http.MethodPost, cancelPath, token, nil); env.StatusCode != 409 {
		t.Fatalf("second cancel want 409 got %d", env.StatusCode)
	}
}

func TestAdminRoutesRequireStaffAndPolicy(t *testing.T) {
	f := setupRouterTest(t)
	customerID, customerToken := f.register(t, "customer@example.com")
	managerID, managerToken := f.register(t, "catalog@example.com")
	rootID, rootToken := f.register(t, "root@example.com")

	categoryBody := gin.H{"name": "Shoes & Bags"}
	if env := f.do(t, http.MethodPost, "/api/v1/admin/categories", customerToken, categoryBody); env.StatusCode != 403 {
		t.Fatalf("customer want 403 got %d", env.StatusCode)
	}

	if _, err := f.container.UserAdminService.SetStaff(managerID, true); err != nil {
		t.Fatalf("set staff failed: %v", err)
	}
	if env := f.do(t, http.MethodPost, "/api/v1/admin/categories", managerToken, categoryBody); env.StatusCode != 403 {
		t.Fatalf("staff without role want 403 got %d", env.StatusCode)
	}
	if err := f.container.AuthzService.SetUserRoles(managerID, []string{constants.RoleCatalogManager}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}
	env := f.do(t, http.MethodPost, "/api/v1/admin/categories", managerToken, categoryBody)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), `"shoes-and-bags"`) {
		t.Fatalf("catalog manager create category: %d %s", env.StatusCode, env.Data)
	}
	if env := f.do(t, http.MethodGet, "/api/v1/admin/orders", managerToken, nil); env.StatusCode != 403 {
		t.Fatalf("catalog manager orders want 403 got %d", env.StatusCode)
	}

	if err := models.DB.Model(&models.User{}).Where("id = ?", rootID).
		Updates(map[string]interface{}{"is_staff": true, "is_superuser": true}).Error; err != nil {
		t.Fatalf("promote superuser failed: %v", err)
	}
	if env := f.do(t, http.MethodGet, "/api/v1/admin/orders", rootToken, nil); env.StatusCode != 0 {
		t.Fatalf("superuser orders want 0 got %d %s", env.StatusCode, env.Msg)
	}
	if env := f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d/roles", customerID), rootToken, gin.H{"roles": []string{"ghost"}}); env.StatusCode != 400 {
		t.Fatalf("unknown role want 400 got %d", env.StatusCode)
	}
	env = f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d/roles", customerID), rootToken, gin.H{"roles": []string{constants.RoleViewer}})
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), constants.RoleViewer) {
		t.Fatalf("assign viewer failed: %d %s", env.StatusCode, env.Data)
	}

	env = f.do(t, http.MethodGet, "/api/v1/admin/permissions/catalog", rootToken, nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), "PUT:/admin/orders/:id/status") {
		t.Fatalf("permission catalog missing order status route: %s", env.Data)
	}
}

func TestAdminOrderStatusFlow(t *testing.T) {
	f := setupRouterTest(t)
	userID, _ := f.register(t, "eze@example.com")
	rootID, rootToken := f.register(t, "ops@example.com")
	if err := models.DB.Model(&models.User{}).Where("id = ?", rootID).
		Updates(map[string]interface{}{"is_staff": true, "is_superuser": true}).Error; err != nil {
		t.Fatalf("promote superuser failed: %v", err)
	}
	product, _ := f.seedProduct(t)
	address, err := f.container.AddressService.CreateAddress(userID, service.AddressInput{
		StreetAddress: "2 Ring Road",
		City:          "Ibadan",
		State:         "OY",
		PhoneNumber:   "+2348111111111",
	})
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	order, err := f.container.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID:            userID,
		ShippingAddressID: address.ID,
		PaymentMethod:     constants.PaymentMethodCrypto,
		Items:             []service.PlaceOrderItem{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	statusPath := fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID)
	if env := f.do(t, http.MethodPut, statusPath, rootToken, gin.H{"status": "SHIPPED"}); env.StatusCode != 409 {
		t.Fatalf("PENDING -> SHIPPED want 409 got %d", env.StatusCode)
	}
	for _, status := range []string{"PAID", "PROCESSING", "SHIPPED", "DELIVERED"} {
		env := f.do(t, http.MethodPut, statusPath, rootToken, gin.H{"status": status})
		if env.StatusCode != 0 || !strings.Contains(string(env.Data), `"`+status+`"`) {
			t.Fatalf("transition to %s failed: %d %s", status, env.StatusCode, env.Msg)
		}
	}
	if env := f.do(t, http.MethodPut, statusPath, rootToken, gin.H{"status": "BOGUS"}); env.StatusCode != 400 {
		t.Fatalf("unknown status want 400 got %d", env.StatusCode)
	}

	env := f.do(t, http.MethodGet, "/api/v1/admin/orders?status=DELIVERED", rootToken, nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), order.OrderNumber) {
		t.Fatalf("admin list by status failed: %d %s", env.StatusCode, env.Data)
	}
	if env := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID), rootToken, nil); env.StatusCode != 0 {
		t.Fatalf("delete order failed: %d %s", env.StatusCode, env.Msg)
	}
	if env := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID), rootToken, nil); env.StatusCode != 404 {
		t.Fatalf("deleted order want 404 got %d", env.StatusCode)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	f := setupRouterTest(t)
	product, _ := f.seedProduct(t)

	env := f.do(t, http.MethodGet, "/api/v1/public/products?category=clothing&min_price=5", "", nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), product.SKU) {
		t.Fatalf("public list missing product: %d %s", env.StatusCode, env.Data)
	}
	if env := f.do(t, http.MethodGet, "/api/v1/public/products?min_price=abc", "", nil); env.StatusCode != 400 {
		t.Fatalf("bad price filter want 400 got %d", env.StatusCode)
	}
	env = f.do(t, http.MethodGet, "/api/v1/public/products/"+product.Slug, "", nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), `"12.50"`) {
		t.Fatalf("product detail should include variant price: %d %s", env.StatusCode, env.Data)
	}
	if env := f.do(t, http.MethodGet, "/api/v1/public/products/missing", "", nil); env.StatusCode != 404 {
		t.Fatalf("missing product want 404 got %d", env.StatusCode)
	}
	env = f.do(t, http.MethodGet, "/api/v1/public/categories/root", "", nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), `"clothing"`) {
		t.Fatalf("root categories missing clothing: %s", env.Data)
	}
}
