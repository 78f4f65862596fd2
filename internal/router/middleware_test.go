package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func openRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

type userAuthFixture struct {
	engine   *gin.Engine
	db       *gorm.DB
	user     *models.User
	sessions *service.SessionService
}

func newUserAuthFixture(t *testing.T) *userAuthFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := openRouterTestDB(t)
	userRepo := repository.NewUserRepository(db)
	sessions := service.NewSessionService(config.UserJWTConfig{SecretKey: "test-secret", AccessExpireMinutes: 60, RefreshExpireHours: 24}, userRepo, repository.NewRevokedTokenRepository(db))

	user := &models.User{
		Email:           "ayse@example.com",
		PasswordHash:    "x",
		FirstName:       "Ayşe",
		LastName:        "Yılmaz",
		IsActive:        true,
		IsEmailVerified: true,
		Status:          constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	r := gin.New()
	r.Use(UserJWTAuthMiddleware(sessions, userRepo))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	return &userAuthFixture{engine: r, db: db, user: user, sessions: sessions}
}

func (f *userAuthFixture) get(token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func TestUserJWTAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	f := newUserAuthFixture(t)
	pair, err := f.sessions.Mint(f.user)
	if err != nil {
		t.Fatalf("mint session failed: %v", err)
	}

	w := f.get(pair.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUserJWTAuthMiddlewareRejects(t *testing.T) {
	f := newUserAuthFixture(t)
	pair, err := f.sessions.Mint(f.user)
	if err != nil {
		t.Fatalf("mint session failed: %v", err)
	}

	if w := f.get(""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header want 401 got %d", w.Code)
	}
	if w := f.get(pair.RefreshToken); w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token used as access token want 401 got %d", w.Code)
	}
	if w := f.get("garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed token want 401 got %d", w.Code)
	}

	if err := f.db.Model(&models.User{}).Where("id = ?", f.user.ID).Update("token_version", 1).Error; err != nil {
		t.Fatalf("bump token version failed: %v", err)
	}
	if w := f.get(pair.AccessToken); w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token want 401 got %d", w.Code)
	}
}

func TestUserJWTAuthMiddlewareRejectsDisabledUser(t *testing.T) {
	f := newUserAuthFixture(t)
	pair, err := f.sessions.Mint(f.user)
	if err != nil {
		t.Fatalf("mint session failed: %v", err)
	}
	if err := f.db.Model(&models.User{}).Where("id = ?", f.user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	w := f.get(pair.AccessToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disabled user want 401 got %d", w.Code)
	}
}

func TestIsIssuedAfterInvalidBefore(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if !isIssuedAfterInvalidBefore(nil, nil) {
		t.Fatalf("no cutoff should accept token")
	}
	before := jwtDate(cutoff.Add(-time.Minute))
	if isIssuedAfterInvalidBefore(before, &cutoff) {
		t.Fatalf("token issued before cutoff should be rejected")
	}
	if !isIssuedAfterInvalidBeforeUnix(jwtDate(cutoff), cutoff.Unix()) {
		t.Fatalf("token issued at cutoff should be accepted")
	}
}

func jwtDate(t time.Time) *jwt.NumericDate {
	return jwt.NewNumericDate(t)
}
