package public

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/provider"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type handlerFixture struct {
	db        *gorm.DB
	engine    *gin.Engine
	container *provider.Container
	mu        sync.Mutex
	mails     map[string]string
}

// linkToken 从邮件正文中取出验证链接的令牌
func linkToken(body, path string) string {
	marker := "/" + path + "/"
	idx := strings.Index(body, marker)
	if idx < 0 {
		return ""
	}
	rest := body[idx+len(marker):]
	if end := strings.IndexAny(rest, "\n "); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		UserJWT:   config.UserJWTConfig{SecretKey: "handler-test-secret", AccessExpireMinutes: 60, RefreshExpireHours: 24},
		AuthToken: config.AuthTokenConfig{VerifyExpireHours: 72, ResetExpireHours: 24, TwoFactorExpireMinutes: 10},
		Email:     config.EmailConfig{FrontendURL: "https://shop.example.com"},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
	}
	container := provider.Build(cfg, db, nil, nil)
	f := &handlerFixture{db: db, container: container, mails: map[string]string{}}
	container.EmailService.SetDeliver(func(_ context.Context, to, subject, body string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.mails[to] = body
		return nil
	})

	h := New(container)
	engine := gin.New()
	api := engine.Group("/api/v1")
	api.GET("/settings/:name", h.GetSetting)
	api.GET("/products/:slug", h.GetProductBySlug)
	api.POST("/auth/register", h.UserRegister)
	api.POST("/auth/verify-email", h.VerifyEmail)
	api.POST("/auth/login", h.UserLogin)

	authed := api.Group("", func(c *gin.Context) {
		raw := c.GetHeader("X-Test-User")
		var id uint
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("user_id", id)
		c.Next()
	})
	authed.GET("/auth/profile", h.GetProfile)
	authed.POST("/auth/logout", h.Logout)
	authed.POST("/orders", h.CreateOrder)
	authed.GET("/orders", h.ListOrders)
	authed.POST("/orders/:id/cancel", h.CancelOrder)
	f.engine = engine
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}, userID uint) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	var env apiEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func (f *handlerFixture) mailTo(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mails[email]
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	f := newHandlerFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":            "ayse@example.com",
		"password":         "Guclu1sifre",
		"password_confirm": "Guclu1sifre",
		"first_name":       "Ayşe",
		"last_name":        "Yılmaz",
	}, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.StatusCode != 0 {
		t.Fatalf("unexpected status code field: %d", env.StatusCode)
	}

	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ayse@example.com", "password": "Guclu1sifre"}, 0)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unverified login expected 401, got %d", rec.Code)
	}

	token := linkToken(f.mailTo("ayse@example.com"), "email-dogrulama")
	if token == "" {
		t.Fatalf("verification link not captured")
	}
	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/verify-email", gin.H{"token": token}, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ayse@example.com", "password": "Yanlis1sifre"}, 0)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401, got %d", rec.Code)
	}
	if env.Msg != "E-posta veya şifre hatalı" {
		t.Fatalf("unexpected message: %s", env.Msg)
	}

	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ayse@example.com", "password": "Guclu1sifre"}, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("login expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var session struct {
		Token   string `json:"token"`
		Refresh string `json:"refresh"`
		User    struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("decode session failed: %v", err)
	}
	if session.Token == "" || session.Refresh == "" || session.User.Email != "ayse@example.com" {
		t.Fatalf("unexpected session payload: %s", string(env.Data))
	}

	rec, env = f.do(t, http.MethodGet, "/api/v1/auth/profile", nil, session.User.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile expected 200, got %d", rec.Code)
	}
	if !strings.Contains(string(env.Data), `"first_name":"Ayşe"`) {
		t.Fatalf("unexpected profile: %s", string(env.Data))
	}

	var failed, succeeded int64
	f.db.Model(&models.UserLoginLog{}).Where("status = ?", constants.LoginLogStatusFailed).Count(&failed)
	f.db.Model(&models.UserLoginLog{}).Where("status = ?", constants.LoginLogStatusSuccess).Count(&succeeded)
	if failed != 2 || succeeded != 2 {
		t.Fatalf("unexpected login log counts: failed=%d success=%d", failed, succeeded)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newHandlerFixture(t)
	rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":            "ayse@example.com",
		"password":         "kisa",
		"password_confirm": "kisa",
		"first_name":       "Ayşe",
		"last_name":        "Yılmaz",
	}, 0)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSettingEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	if _, err := f.container.SettingService.Update(constants.SettingKeyContact, map[string]interface{}{"phone": "+90 212 000 00 00"}); err != nil {
		t.Fatalf("seed setting failed: %v", err)
	}

	rec, env := f.do(t, http.MethodGet, "/api/v1/settings/contact", nil, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var value map[string]string
	if err := json.Unmarshal(env.Data, &value); err != nil {
		t.Fatalf("decode setting failed: %v", err)
	}
	if value["phone"] != "+90 212 000 00 00" || value["email"] != "" {
		t.Fatalf("unexpected setting: %v", value)
	}

	rec, env = f.do(t, http.MethodGet, "/api/v1/settings/unknown", nil, 0)
	if rec.Code != http.StatusNotFound || env.Msg != "Ayar bulunamadı" {
		t.Fatalf("expected 404 setting_not_found, got %d %s", rec.Code, env.Msg)
	}
}

func TestProductNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	rec, _ := f.do(t, http.MethodGet, "/api/v1/products/olmayan", nil, 0)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderEndpoints(t *testing.T) {
	f := newHandlerFixture(t)
	user := &models.User{Email: "ayse@example.com", PasswordHash: "x", IsActive: true, IsEmailVerified: true}
	if err := f.container.UserRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	category, err := f.container.CategoryService.Create(service.CategoryInput{Name: "Elektronik"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	sub, err := f.container.CategoryService.CreateSubCategory(service.SubCategoryInput{CategoryID: category.ID, Name: "Telefon"})
	if err != nil {
		t.Fatalf("create subcategory failed: %v", err)
	}
	product, err := f.container.ProductService.Create(service.ProductInput{SubCategoryID: sub.ID, Name: "Galaksi", Price: decimal.NewFromInt(500), Stock: 3})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rec, env := f.do(t, http.MethodPost, "/api/v1/orders", gin.H{
		"shipping_address": "Kadıköy, İstanbul",
		"total_amount":     "999.00",
		"items":            []gin.H{{"product": product.ID, "quantity": 2, "price": "500.00"}},
	}, user.ID)
	if rec.Code != http.StatusBadRequest || env.Msg != "Toplam tutar ürünlerle eşleşmiyor" {
		t.Fatalf("mismatched total expected 400, got %d %s", rec.Code, env.Msg)
	}

	rec, env = f.do(t, http.MethodPost, "/api/v1/orders", gin.H{
		"shipping_address": "Kadıköy, İstanbul",
		"items":            []gin.H{{"product": product.ID, "quantity": 2, "price": "500.00"}},
	}, user.ID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create order expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order OrderView
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending || order.TotalAmount.String() != "1000.00" || len(order.Items) != 1 {
		t.Fatalf("unexpected order: %+v", order)
	}

	rec, _ = f.do(t, http.MethodGet, "/api/v1/orders", nil, user.ID)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Fatalf("list orders unexpected: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID), nil, user.ID+1)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign cancel expected 404, got %d", rec.Code)
	}
	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID), nil, user.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID), nil, user.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second cancel expected 400, got %d", rec.Code)
	}

	ctx := context.Background()
	shipped, err := f.container.OrderService.CreateOrder(ctx, service.CreateOrderInput{
		UserID:          user.ID,
		ShippingAddress: "Üsküdar, İstanbul",
		Items:           []service.CreateOrderItemInput{{ProductID: product.ID, Quantity: 1, Price: decimal.NewFromInt(500)}},
	})
	if err != nil {
		t.Fatalf("create second order failed: %v", err)
	}
	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusShipped} {
		if _, err := f.container.OrderService.UpdateOrderStatus(ctx, shipped.ID, status); err != nil {
			t.Fatalf("move to %s failed: %v", status, err)
		}
	}
	rec, _ = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", shipped.ID), nil, user.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("cancel shipped order expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	reloaded, err := f.container.OrderService.GetOrderByUser(shipped.ID, user.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped || reloaded.CancelledAt != nil {
		t.Fatalf("shipped order must stay unchanged, got %s", reloaded.Status)
	}
}

func TestLogoutRequiresOwnRefreshToken(t *testing.T) {
	f := newHandlerFixture(t)
	owner := &models.User{Email: "ayse@example.com", PasswordHash: "x", IsActive: true, IsEmailVerified: true, Status: constants.UserStatusActive}
	other := &models.User{Email: "ali@example.com", PasswordHash: "x", IsActive: true, IsEmailVerified: true, Status: constants.UserStatusActive}
	for _, u := range []*models.User{owner, other} {
		if err := f.container.UserRepo.Create(u); err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}
	pair, err := f.container.SessionService.Mint(owner)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/logout", gin.H{"refresh_token": pair.RefreshToken}, other.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("foreign logout expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var revoked int64
	f.db.Model(&models.RevokedToken{}).Count(&revoked)
	if revoked != 0 {
		t.Fatalf("foreign logout must not revoke anything, got %d rows", revoked)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/logout", gin.H{"refresh_token": pair.RefreshToken}, owner.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("own logout expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	f.db.Model(&models.RevokedToken{}).Where("user_id = ?", owner.ID).Count(&revoked)
	if revoked != 1 {
		t.Fatalf("own logout should revoke the refresh token, got %d rows", revoked)
	}
	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/logout", gin.H{}, owner.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing refresh token expected 400, got %d", rec.Code)
	}
}
