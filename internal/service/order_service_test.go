package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderFixture struct {
	db       *gorm.DB
	catalog  *catalogFixture
	notifier *fakeNotifier
	orders   *OrderService
	user     *models.User
	phone    *models.Product
	cover    *models.Product
}

func newOrderFixture(t *testing.T, cfg config.OrderConfig) *orderFixture {
	t.Helper()
	db := openServiceTestDB(t)
	user := &models.User{Email: "ayse@example.com", PasswordHash: "x", IsActive: true, IsEmailVerified: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	catalog := newCatalogFixture(t, db)
	notifier := &fakeNotifier{}
	return &orderFixture{
		db:       db,
		catalog:  catalog,
		notifier: notifier,
		orders:   NewOrderService(cfg, catalog.orderRepo, catalog.productRepo, notifier),
		user:     user,
		phone:    catalog.createProduct(t, "Galaksi Telefon", "1000.00"),
		cover:    catalog.createProduct(t, "Silikon Kılıf", "49.90"),
	}
}

func (f *orderFixture) items() []CreateOrderItemInput {
	return []CreateOrderItemInput{
		{ProductID: f.phone.ID, Quantity: 1, Price: decimal.RequireFromString("1000.00")},
		{ProductID: f.cover.ID, Quantity: 2, Price: decimal.RequireFromString("49.90")},
	}
}

func TestCreateOrderComputesTotal(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{})
	order, err := f.orders.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          f.user.ID,
		ShippingAddress: "Kadıköy, İstanbul",
		Items:           f.items(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("new order should be pending, got %s", order.Status)
	}
	if len(order.OrderNumber) != constants.OrderNumberLength {
		t.Fatalf("unexpected order number: %s", order.OrderNumber)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("1099.80")) {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(order.Items))
	}
}

func TestCreateOrderTotalMismatch(t *testing.T) {
	wrong := decimal.RequireFromString("10.00")
	input := func(f *orderFixture) CreateOrderInput {
		return CreateOrderInput{UserID: f.user.ID, ShippingAddress: "Ankara", TotalAmount: &wrong, Items: f.items()}
	}

	strict := newOrderFixture(t, config.OrderConfig{})
	if _, err := strict.orders.CreateOrder(context.Background(), input(strict)); !errors.Is(err, ErrOrderAmountMismatch) {
		t.Fatalf("expected ErrOrderAmountMismatch, got %v", err)
	}

	trusting := newOrderFixture(t, config.OrderConfig{TrustClientTotal: true})
	order, err := trusting.orders.CreateOrder(context.Background(), input(trusting))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !order.TotalAmount.Decimal.Equal(wrong) {
		t.Fatalf("client total should be kept, got %s", order.TotalAmount.String())
	}

	exact := decimal.RequireFromString("1099.8")
	matched, err := strict.orders.CreateOrder(context.Background(), CreateOrderInput{
		UserID: strict.user.ID, ShippingAddress: "Ankara", TotalAmount: &exact, Items: strict.items(),
	})
	if err != nil {
		t.Fatalf("matching total should be accepted: %v", err)
	}
	if matched.TotalAmount.String() != "1099.80" {
		t.Fatalf("unexpected total: %s", matched.TotalAmount.String())
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{})
	ctx := context.Background()
	tests := []struct {
		name  string
		input CreateOrderInput
		want  error
	}{
		{name: "no_address", input: CreateOrderInput{UserID: f.user.ID, Items: f.items()}, want: ErrShippingAddressMissing},
		{name: "no_items", input: CreateOrderInput{UserID: f.user.ID, ShippingAddress: "İzmir"}, want: ErrOrderItemsEmpty},
		{name: "zero_quantity", input: CreateOrderInput{UserID: f.user.ID, ShippingAddress: "İzmir", Items: []CreateOrderItemInput{{ProductID: f.phone.ID, Quantity: 0}}}, want: ErrOrderItemInvalid},
		{name: "unknown_product", input: CreateOrderInput{UserID: f.user.ID, ShippingAddress: "İzmir", Items: []CreateOrderItemInput{{ProductID: 9999, Quantity: 1}}}, want: ErrOrderProductNotFound},
	}
	for _, tt := range tests {
		if _, err := f.orders.CreateOrder(ctx, tt.input); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestCancelOrder(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{StatusEmail: true})
	ctx := context.Background()
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{UserID: f.user.ID, ShippingAddress: "Bursa", Items: f.items()})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.orders.CancelOrder(ctx, order.ID, f.user.ID+1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user expected ErrOrderNotFound, got %v", err)
	}
	cancelled, err := f.orders.CancelOrder(ctx, order.ID, f.user.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled order: %+v", cancelled)
	}
	if _, err := f.orders.CancelOrder(ctx, order.ID, f.user.ID); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("second cancel expected ErrOrderNotCancellable, got %v", err)
	}
	if got := f.notifier.statuses(); len(got) != 1 || got[0] != constants.OrderStatusCancelled {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestCancelShippedOrderIsRejected(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{StatusEmail: true})
	ctx := context.Background()
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{UserID: f.user.ID, ShippingAddress: "Antalya", Items: f.items()})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusShipped} {
		if _, err := f.orders.UpdateOrderStatus(ctx, order.ID, status); err != nil {
			t.Fatalf("move to %s failed: %v", status, err)
		}
	}

	if _, err := f.orders.CancelOrder(ctx, order.ID, f.user.ID); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("cancel shipped expected ErrOrderNotCancellable, got %v", err)
	}
	reloaded, err := f.orders.GetOrderByUser(order.ID, f.user.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped || reloaded.CancelledAt != nil {
		t.Fatalf("shipped order changed: status=%s cancelled_at=%v", reloaded.Status, reloaded.CancelledAt)
	}
	if got := f.notifier.statuses(); len(got) != 2 || got[1] != constants.OrderStatusShipped {
		t.Fatalf("rejected cancel must not notify, got %v", got)
	}
}

func TestUpdateOrderStatusMovesForwardOnly(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{StatusEmail: true})
	ctx := context.Background()
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{UserID: f.user.ID, ShippingAddress: "Bursa", Items: f.items()})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.orders.UpdateOrderStatus(ctx, order.ID, constants.OrderStatusShipped); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending to shipped should be rejected, got %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, order.ID, "kayboldu"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status should be rejected, got %v", err)
	}
	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		updated, err := f.orders.UpdateOrderStatus(ctx, order.ID, status)
		if err != nil {
			t.Fatalf("move to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("delivered order must not be cancelled, got %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("same status should be a no-op, got %v", err)
	}
	if got := f.notifier.statuses(); len(got) != 3 {
		t.Fatalf("expected three notifications, got %v", got)
	}
}

func TestListOrdersByUser(t *testing.T) {
	f := newOrderFixture(t, config.OrderConfig{})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := f.orders.CreateOrder(ctx, CreateOrderInput{UserID: f.user.ID, ShippingAddress: "Eskişehir", Items: f.items()}); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	orders, total, err := f.orders.ListOrdersByUser(repository.OrderListFilter{UserID: f.user.ID, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(orders) != 2 {
		t.Fatalf("unexpected page: total=%d len=%d", total, len(orders))
	}
	empty, total, err := f.orders.ListOrdersByUser(repository.OrderListFilter{})
	if err != nil || total != 0 || len(empty) != 0 {
		t.Fatalf("missing user should list nothing")
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	number, err := generateOrderNumber(10)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(number) != 10 {
		t.Fatalf("unexpected length: %s", number)
	}
	for _, r := range number {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			t.Fatalf("unexpected rune %q in %s", r, number)
		}
	}
}
