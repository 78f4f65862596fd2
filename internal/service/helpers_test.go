package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/queue"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, testDBSeq.Add(1))
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

// fakeMailer 记录最近一次投递的令牌
type fakeMailer struct {
	mu     sync.Mutex
	last   map[string]string
	counts map[string]int
	err    error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{last: map[string]string{}, counts: map[string]int{}}
}

func (m *fakeMailer) record(kind, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.last[kind] = token
	m.counts[kind]++
	return nil
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, _ *models.User, token, _ string) error {
	return m.record("verify", token)
}

func (m *fakeMailer) SendPasswordResetEmail(_ context.Context, _ *models.User, token, _ string) error {
	return m.record("reset", token)
}

func (m *fakeMailer) SendTwoFactorCode(_ context.Context, _ *models.User, code, _ string) error {
	return m.record("two_factor", code)
}

func (m *fakeMailer) lastToken(kind string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last[kind]
}

type authFixture struct {
	db       *gorm.DB
	users    *repository.GormUserRepository
	mailer   *fakeMailer
	tokens   *TokenService
	sessions *SessionService
	auth     *UserAuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := &config.Config{
		UserJWT: config.UserJWTConfig{SecretKey: "service-test-secret", AccessExpireMinutes: 60, RefreshExpireHours: 24},
		AuthToken: config.AuthTokenConfig{
			VerifyExpireHours:      72,
			ResetExpireHours:       24,
			TwoFactorExpireMinutes: 10,
			TwoFactorLength:        6,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true, RejectNumeric: true},
		},
	}
	users := repository.NewUserRepository(db)
	mailer := newFakeMailer()
	tokens := NewTokenService(cfg.AuthToken, repository.NewAuthTokenRepository(db), mailer)
	sessions := NewSessionService(cfg.UserJWT, users, repository.NewRevokedTokenRepository(db))
	return &authFixture{
		db:       db,
		users:    users,
		mailer:   mailer,
		tokens:   tokens,
		sessions: sessions,
		auth:     NewUserAuthService(cfg, users, tokens, sessions),
	}
}

// registerVerified 注册并完成邮箱验证
func (f *authFixture) registerVerified(t *testing.T, email, password string) *models.User {
	t.Helper()
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, RegisterInput{
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		FirstName:       "Ayşe",
		LastName:        "Yılmaz",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	result, err := f.auth.VerifyEmail(ctx, f.mailer.lastToken("verify"))
	if err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
	return result.User
}

// fakeNotifier 记录订单状态通知
type fakeNotifier struct {
	mu       sync.Mutex
	payloads []queue.OrderStatusEmailPayload
}

func (n *fakeNotifier) EnqueueOrderStatusEmail(payload queue.OrderStatusEmailPayload, _ ...asynq.Option) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
	return nil
}

func (n *fakeNotifier) statuses() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.payloads))
	for _, p := range n.payloads {
		out = append(out, p.Status)
	}
	return out
}

type catalogFixture struct {
	categories  *CategoryService
	products    *ProductService
	reviews     *ReviewService
	orderRepo   *repository.GormOrderRepository
	productRepo *repository.GormProductRepository
}

func newCatalogFixture(t *testing.T, db *gorm.DB) *catalogFixture {
	t.Helper()
	categories := NewCategoryService(repository.NewCategoryRepository(db), repository.NewSubCategoryRepository(db))
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	products := NewProductService(productRepo, repository.NewProductImageRepository(db), repository.NewProductVariantRepository(db), reviewRepo, categories)
	return &catalogFixture{
		categories:  categories,
		products:    products,
		reviews:     NewReviewService(reviewRepo, orderRepo, products),
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (f *catalogFixture) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	categories, err := f.categories.List()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	var subID uint
	if len(categories) == 0 {
		category, err := f.categories.Create(CategoryInput{Name: "Elektronik"})
		if err != nil {
			t.Fatalf("create category failed: %v", err)
		}
		sub, err := f.categories.CreateSubCategory(SubCategoryInput{CategoryID: category.ID, Name: "Akıllı Telefonlar"})
		if err != nil {
			t.Fatalf("create subcategory failed: %v", err)
		}
		subID = sub.ID
	} else {
		subs, err := f.categories.ListSubCategories(categories[0].Slug)
		if err != nil || len(subs) == 0 {
			t.Fatalf("list subcategories failed: %v", err)
		}
		subID = subs[0].ID
	}
	product, err := f.products.Create(ProductInput{
		SubCategoryID: subID,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Stock:         10,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
