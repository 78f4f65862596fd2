package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"

	"github.com/shopspring/decimal"
)

func TestReviewCreateRules(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{})
	reviews := f.catalog.reviews

	if _, err := reviews.Create(f.phone.Slug, CreateReviewInput{UserID: f.user.ID, Rating: 6, Comment: "Harika"}); !errors.Is(err, ErrReviewRatingInvalid) {
		t.Fatalf("expected ErrReviewRatingInvalid, got %v", err)
	}
	if _, err := reviews.Create(f.phone.Slug, CreateReviewInput{UserID: f.user.ID, Rating: 5, Comment: "  "}); !errors.Is(err, ErrReviewCommentEmpty) {
		t.Fatalf("expected ErrReviewCommentEmpty, got %v", err)
	}
	if _, err := reviews.Create("olmayan-urun", CreateReviewInput{UserID: f.user.ID, Rating: 5, Comment: "Harika"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	review, err := reviews.Create(f.phone.Slug, CreateReviewInput{UserID: f.user.ID, Rating: 4, Comment: " Güzel telefon ", Pros: "Kamera"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if review.IsApproved || review.IsVerifiedPurchase {
		t.Fatalf("new review should be pending and unverified: %+v", review)
	}
	if review.Comment != "Güzel telefon" {
		t.Fatalf("comment should be trimmed, got %q", review.Comment)
	}
	if _, err := reviews.Create(f.phone.Slug, CreateReviewInput{UserID: f.user.ID, Rating: 3, Comment: "Tekrar"}); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
}

func TestReviewVerifiedPurchase(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{})
	ctx := context.Background()
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          f.user.ID,
		ShippingAddress: "Antalya",
		Items:           []CreateOrderItemInput{{ProductID: f.cover.ID, Quantity: 1, Price: decimal.RequireFromString("49.90")}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		if _, err := f.orders.UpdateOrderStatus(ctx, order.ID, status); err != nil {
			t.Fatalf("move to %s failed: %v", status, err)
		}
	}

	review, err := f.catalog.reviews.Create(f.cover.Slug, CreateReviewInput{UserID: f.user.ID, Rating: 5, Comment: "Tam oldu"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if !review.IsVerifiedPurchase {
		t.Fatalf("delivered purchase should mark review verified")
	}
}

func TestReviewApprovalControlsVisibility(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{})
	reviews := f.catalog.reviews

	other := &models.User{Email: "mehmet@example.com", PasswordHash: "x", IsActive: true, IsEmailVerified: true}
	if err := f.db.Create(other).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	first, err := reviews.Create(f.phone.Slug, CreateReviewInput{UserID: f.user.ID, Rating: 5, Comment: "Mükemmel"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	second, err := reviews.Create(f.phone.Slug, CreateReviewInput{UserID: other.ID, Rating: 4, Comment: "İyi"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	visible, total, err := reviews.ListApproved(f.phone.Slug, 1, 10)
	if err != nil {
		t.Fatalf("list approved failed: %v", err)
	}
	if total != 0 || len(visible) != 0 {
		t.Fatalf("pending reviews must be hidden")
	}

	for _, id := range []uint{first.ID, second.ID} {
		if _, err := reviews.SetApproved(id, true); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
	}
	visible, total, err = reviews.ListApproved(f.phone.Slug, 1, 10)
	if err != nil {
		t.Fatalf("list approved failed: %v", err)
	}
	if total != 2 || len(visible) != 2 {
		t.Fatalf("expected two visible reviews, got %d", total)
	}

	detail, err := f.catalog.products.GetDetail(f.phone.Slug)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.ReviewCount != 2 || detail.AverageRating == nil || *detail.AverageRating != 4.5 {
		t.Fatalf("unexpected rating summary: count=%d avg=%v", detail.ReviewCount, detail.AverageRating)
	}

	if err := reviews.Delete(second.ID); err != nil {
		t.Fatalf("delete review failed: %v", err)
	}
	if err := reviews.Delete(second.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
	if _, err := reviews.SetApproved(9999, true); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
