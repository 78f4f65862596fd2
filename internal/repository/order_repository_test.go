package repository

import (
	"testing"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, userID uint, number string, productID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:          userID,
		OrderNumber:     number,
		Status:          constants.OrderStatusPending,
		TotalAmount:     models.MustMoney("200"),
		ShippingAddress: "Kadıköy, İstanbul",
	}
	items := []models.OrderItem{{ProductID: &productID, Quantity: 2, Price: models.MustMoney("100")}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderUpdateStatusIsConditional(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	category, sub := seedCatalog(t, db)
	product := seedProduct(t, db, category, sub, "Kulaklık", "kulaklik", "100")
	user := seedUser(t, db, "status@example.com")
	order := createTestOrder(t, repo, user.ID, "ORD0000001", product.ID)

	now := time.Now()
	ok, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, map[string]interface{}{"cancelled_at": now})
	if err != nil || !ok {
		t.Fatalf("pending -> cancelled should succeed, ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusConfirmed, nil)
	if err != nil || ok {
		t.Fatalf("stale transition should not apply, ok=%v err=%v", ok, err)
	}

	stored, err := repo.GetByIDAndUser(order.ID, user.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusCancelled || stored.CancelledAt == nil {
		t.Fatalf("unexpected stored order: status=%s cancelled_at=%v", stored.Status, stored.CancelledAt)
	}
	if len(stored.Items) != 1 || stored.Items[0].Total.String() != "200.00" {
		t.Fatalf("items should be preloaded with totals: %+v", stored.Items)
	}
}

func TestOrderGetByIDAndUserHidesForeignOrders(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	category, sub := seedCatalog(t, db)
	product := seedProduct(t, db, category, sub, "Mouse", "mouse", "100")
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	order := createTestOrder(t, repo, owner.ID, "ORD0000002", product.ID)

	got, err := repo.GetByIDAndUser(order.ID, other.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != nil {
		t.Fatalf("order of another user must not be visible")
	}

	exists, err := repo.ExistsByOrderNumber("ORD0000002")
	if err != nil || !exists {
		t.Fatalf("order number should exist, exists=%v err=%v", exists, err)
	}
	email, err := repo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil || email != owner.Email {
		t.Fatalf("receiver email want %s got %s err=%v", owner.Email, email, err)
	}
}

func TestOrderHasDeliveredProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	category, sub := seedCatalog(t, db)
	product := seedProduct(t, db, category, sub, "Klavye", "klavye", "100")
	user := seedUser(t, db, "delivered@example.com")
	order := createTestOrder(t, repo, user.ID, "ORD0000003", product.ID)

	has, err := repo.HasDeliveredProduct(user.ID, product.ID)
	if err != nil || has {
		t.Fatalf("pending order should not count, has=%v err=%v", has, err)
	}
	if _, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusDelivered, nil); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	has, err = repo.HasDeliveredProduct(user.ID, product.ID)
	if err != nil || !has {
		t.Fatalf("delivered order should count, has=%v err=%v", has, err)
	}
}
