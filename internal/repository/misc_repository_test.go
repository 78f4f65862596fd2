package repository

import (
	"testing"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
)

func TestReviewApprovedSummary(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	category, sub := seedCatalog(t, db)
	product := seedProduct(t, db, category, sub, "Saat", "saat", "900")

	empty, err := repo.ApprovedSummary(product.ID)
	if err != nil || empty.Count != 0 || empty.Average != 0 {
		t.Fatalf("empty summary mismatch: %+v err=%v", empty, err)
	}

	for i, rating := range []int{5, 4, 1} {
		user := seedUser(t, db, []string{"a@example.com", "b@example.com", "c@example.com"}[i])
		review := &models.Review{ProductID: product.ID, UserID: user.ID, Rating: rating, Comment: "yorum", IsApproved: rating != 1}
		if err := repo.Create(review); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}

	summary, err := repo.ApprovedSummary(product.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Count != 2 || summary.Average != 4.5 {
		t.Fatalf("want avg 4.5 over 2 got %+v", summary)
	}
}

func TestReviewUniquePerUserAndProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	category, sub := seedCatalog(t, db)
	product := seedProduct(t, db, category, sub, "Çanta", "canta", "300")
	user := seedUser(t, db, "review@example.com")

	if err := repo.Create(&models.Review{ProductID: product.ID, UserID: user.ID, Rating: 5, Comment: "güzel"}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	exists, err := repo.ExistsByProductAndUser(product.ID, user.ID)
	if err != nil || !exists {
		t.Fatalf("review should exist, exists=%v err=%v", exists, err)
	}
	if err := repo.Create(&models.Review{ProductID: product.ID, UserID: user.ID, Rating: 3, Comment: "tekrar"}); err == nil {
		t.Fatalf("duplicate review should violate unique index")
	}
}

func TestSettingUpsertReplacesValue(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingRepository(db)

	if _, err := repo.Upsert(constants.SettingKeyContact, models.JSON{"phone": "0212"}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if _, err := repo.Upsert(constants.SettingKeyContact, models.JSON{"phone": "0216"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	setting, err := repo.GetByKey(constants.SettingKeyContact)
	if err != nil || setting == nil {
		t.Fatalf("get setting failed: %v", err)
	}
	if setting.ValueJSON["phone"] != "0216" {
		t.Fatalf("want updated phone got %v", setting.ValueJSON["phone"])
	}
	missing, err := repo.GetByKey(constants.SettingKeyPolicies)
	if err != nil || missing != nil {
		t.Fatalf("missing key should return nil, got %+v err=%v", missing, err)
	}
}

func TestRevokedTokenRevokeIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewRevokedTokenRepository(db)
	expires := time.Now().Add(time.Hour)

	first, err := repo.Revoke("jti-1", 1, expires)
	if err != nil || !first {
		t.Fatalf("first revoke should insert, ok=%v err=%v", first, err)
	}
	second, err := repo.Revoke("jti-1", 1, expires)
	if err != nil || second {
		t.Fatalf("second revoke should be a no-op, ok=%v err=%v", second, err)
	}
	exists, err := repo.Exists("jti-1")
	if err != nil || !exists {
		t.Fatalf("revoked jti should exist, exists=%v err=%v", exists, err)
	}

	if _, err := repo.Revoke("jti-old", 1, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("revoke old failed: %v", err)
	}
	purged, err := repo.PurgeExpired(time.Now())
	if err != nil || purged != 1 {
		t.Fatalf("want 1 purged got %d err=%v", purged, err)
	}
}

func TestUserDeleteWithRelations(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	category, sub := seedCatalog(t, db)
	product := seedProduct(t, db, category, sub, "Lamba", "lamba", "100")
	user := seedUser(t, db, "delete@example.com")
	keep := seedUser(t, db, "keep@example.com")

	createTestOrder(t, NewOrderRepository(db), user.ID, "ORD0000010", product.ID)
	createTestOrder(t, NewOrderRepository(db), keep.ID, "ORD0000011", product.ID)
	if err := NewAuthTokenRepository(db).Create(&models.AuthToken{UserID: user.ID, Purpose: constants.AuthTokenPurposeEmailVerify, Token: "t"}); err != nil {
		t.Fatalf("create token failed: %v", err)
	}
	if err := NewReviewRepository(db).Create(&models.Review{ProductID: product.ID, UserID: user.ID, Rating: 4, Comment: "iyi"}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	if err := users.DeleteWithRelations(user.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	gone, err := users.GetByID(user.ID)
	if err != nil || gone != nil {
		t.Fatalf("user should be deleted, got %+v err=%v", gone, err)
	}
	var orderCount, itemCount, tokenCount, reviewCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	db.Model(&models.AuthToken{}).Count(&tokenCount)
	db.Model(&models.Review{}).Count(&reviewCount)
	if orderCount != 1 || itemCount != 1 || tokenCount != 0 || reviewCount != 0 {
		t.Fatalf("unexpected remaining rows orders=%d items=%d tokens=%d reviews=%d", orderCount, itemCount, tokenCount, reviewCount)
	}
}
