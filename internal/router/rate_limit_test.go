package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kasuwa-shop/internal/config"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "test@example.com|1.2.3.4" {
		t.Fatalf("key want test@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Test@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`not-json`))
	c.Request.RemoteAddr = "9.8.7.6:1000"

	if key := KeyByIPAndJSONField("email")(c); key != "9.8.7.6" {
		t.Fatalf("key want 9.8.7.6 got %s", key)
	}
}

func TestDecideWindow(t *testing.T) {
	rule := RateLimitRule{WindowSeconds: 60, MaxRequests: 2}

	decision, err := decideWindow([]interface{}{int64(2), int64(55)}, rule)
	if err != nil || !decision.Allowed {
		t.Fatalf("count at limit should pass, got %+v err=%v", decision, err)
	}

	decision, err = decideWindow([]interface{}{int64(3), int64(41)}, rule)
	if err != nil || decision.Allowed || decision.WaitSeconds != 41 {
		t.Fatalf("count over limit should wait ttl, got %+v err=%v", decision, err)
	}

	decision, err = decideWindow([]interface{}{"3", int64(-1)}, rule)
	if err != nil || decision.Allowed || decision.WaitSeconds != 60 {
		t.Fatalf("missing ttl should fall back to window, got %+v err=%v", decision, err)
	}

	if _, err := decideWindow("OK", rule); err == nil {
		t.Fatalf("non-array reply should fail")
	}
	if _, err := decideWindow([]interface{}{"abc", int64(1)}, rule); err == nil {
		t.Fatalf("non-numeric count should fail")
	}
}

func TestLoginRateLimitRule(t *testing.T) {
	rule := LoginRateLimitRule("kasuwa", config.LoginRateLimitConfig{WindowSeconds: 300, MaxAttempts: 5})
	if rule.key("a@b.c|1.1.1.1") != "kasuwa:rate:login:a@b.c|1.1.1.1" {
		t.Fatalf("unexpected key %s", rule.key("a@b.c|1.1.1.1"))
	}
	if !rule.enabled() || rule.messageKey() != "error.rate_limited" {
		t.Fatalf("unexpected rule %+v", rule)
	}
	if (RateLimitRule{WindowSeconds: 60}).enabled() {
		t.Fatalf("rule without max requests must be disabled")
	}
}

func TestKeyByIPAndJSONFieldIgnoresNonString(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":42}`))
	c.Request.RemoteAddr = "5.5.5.5:80"

	if key := KeyByIPAndJSONField("email")(c); key != "5.5.5.5" {
		t.Fatalf("key want 5.5.5.5 got %s", key)
	}
}
