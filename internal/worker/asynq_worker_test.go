package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/provider"
	"github.com/Selinclb/eticaretsitesi/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

func setupConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		Email:   config.EmailConfig{FrontendURL: "http://localhost:5173"},
		UserJWT: config.UserJWTConfig{SecretKey: "worker-test-secret"},
	}
	return NewConsumer(provider.Build(cfg, db, nil, nil)), db
}

func seedOrder(t *testing.T, db *gorm.DB, status string) *models.Order {
	t.Helper()
	user := &models.User{Email: "musteri@example.com", PasswordHash: "x", FirstName: "Mehmet", LastName: "Kaya", Locale: "tr-TR"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := &models.Order{
		UserID:          user.ID,
		OrderNumber:     "AB12CD34EF",
		Status:          status,
		TotalAmount:     models.MustMoney("1250.50"),
		ShippingAddress: "Kadıköy, İstanbul",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestHandleOrderStatusEmailSendsToOwner(t *testing.T) {
	consumer, db := setupConsumer(t)
	order := seedOrder(t, db, constants.OrderStatusShipped)

	var sent []sentMail
	consumer.EmailService.SetDeliver(func(_ context.Context, to, subject, body string) error {
		sent = append(sent, sentMail{to: to, subject: subject, body: body})
		return nil
	})

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: order.ID, Status: constants.OrderStatusShipped})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(sent))
	}
	if sent[0].to != "musteri@example.com" {
		t.Fatalf("unexpected receiver: %s", sent[0].to)
	}
	if !strings.Contains(sent[0].subject, "AB12CD34EF") {
		t.Fatalf("subject should contain order number: %s", sent[0].subject)
	}
	if !strings.Contains(sent[0].body, "1.250,50") {
		t.Fatalf("body should contain formatted amount: %s", sent[0].body)
	}
}

func TestHandleOrderStatusEmailSkipsMissingOrder(t *testing.T) {
	consumer, _ := setupConsumer(t)
	called := false
	consumer.EmailService.SetDeliver(func(context.Context, string, string, string) error {
		called = true
		return nil
	})
	task, _ := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: 999})
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
	if called {
		t.Fatalf("mail should not be sent for missing order")
	}
}

func TestHandleOrderStatusEmailDisabledSkipsRetry(t *testing.T) {
	consumer, db := setupConsumer(t)
	order := seedOrder(t, db, constants.OrderStatusConfirmed)

	task, _ := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: order.ID})
	err := consumer.handleOrderStatusEmail(context.Background(), task)
	if err == nil {
		t.Fatalf("expected error when email service disabled")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleRevokedTokenPurge(t *testing.T) {
	consumer, db := setupConsumer(t)
	now := time.Now()
	rows := []models.RevokedToken{
		{JTI: "expired-jti", UserID: 1, ExpiresAt: now.Add(-time.Hour)},
		{JTI: "live-jti", UserID: 1, ExpiresAt: now.Add(time.Hour)},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed revoked tokens failed: %v", err)
	}

	if err := consumer.handleRevokedTokenPurge(context.Background(), queue.NewRevokedTokenPurgeTask()); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	var count int64
	db.Model(&models.RevokedToken{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one remaining revoked token, got %d", count)
	}
}
