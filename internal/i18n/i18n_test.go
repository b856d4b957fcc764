package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                    LocaleEN,
		"zh-CN":               LocaleZH,
		"zh":                  LocaleZH,
		"zh-Hans-CN,zh;q=0.9": LocaleZH,
		"en-GB,en;q=0.8":      LocaleEN,
		"fr-FR":               LocaleEN,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", raw, want, got)
		}
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?lang=zh-CN", nil)
	c.Request.Header.Set("Accept-Language", "en-US")
	if got := ResolveLocale(c); got != LocaleZH {
		t.Fatalf("want %s got %s", LocaleZH, got)
	}

	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	if got := ResolveLocale(c); got != LocaleZH {
		t.Fatalf("header locale want %s got %s", LocaleZH, got)
	}

	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context want %s got %s", DefaultLocale, got)
	}
}

func TestTranslateFallbacks(t *testing.T) {
	if got := T(LocaleZH, "error.forbidden"); got != messagesZH["error.forbidden"] {
		t.Fatalf("unexpected zh message: %s", got)
	}
	if got := T("xx-XX", "error.forbidden"); got != messagesEN["error.forbidden"] {
		t.Fatalf("unknown locale should fall back to english, got %s", got)
	}
	if got := T(LocaleEN, "error.does_not_exist"); got != "error.does_not_exist" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messagesEN {
		if _, ok := messagesZH[key]; !ok {
			t.Fatalf("zh catalog missing %s", key)
		}
	}
	for key := range messagesZH {
		if _, ok := messagesEN[key]; !ok {
			t.Fatalf("en catalog missing %s", key)
		}
	}
}
