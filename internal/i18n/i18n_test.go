package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messagesTR {
		if _, ok := messagesEN[key]; !ok {
			t.Fatalf("en-US catalog missing key %s", key)
		}
	}
	for key := range messagesEN {
		if _, ok := messagesTR[key]; !ok {
			t.Fatalf("tr-TR catalog missing key %s", key)
		}
	}
}

func TestCatalogPlaceholdersMatch(t *testing.T) {
	for key, tr := range messagesTR {
		en := messagesEN[key]
		if strings.Count(tr, "%") != strings.Count(en, "%") {
			t.Fatalf("placeholder count differs for %s", key)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"en-US,en;q=0.9": LocaleEN,
		"en":             LocaleEN,
		"tr":             LocaleTR,
		"de-DE":          LocaleTR,
		"":               LocaleTR,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", raw, want, got)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleEN, "error.login_invalid"); got != "Invalid email or password" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("xx", "error.login_invalid"); got != messagesTR["error.login_invalid"] {
		t.Fatalf("unknown locale should fall back to tr-TR, got %s", got)
	}
	if got := T(LocaleEN, "error.not_a_key"); got != "error.not_a_key" {
		t.Fatalf("missing key should return key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	c.Request.Header.Set("Accept-Language", "tr-TR")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("lang query should win, got %s", got)
	}

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "en-GB")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("accept-language en-GB should map to en-US, got %s", got)
	}
	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context should use default, got %s", got)
	}
}
