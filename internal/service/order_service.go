package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/queue"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// allowedTransitions 订单状态只允许前进，取消仅限待确认状态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipped: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

// OrderStatusNotifier 订单状态通知入队接口
type OrderStatusNotifier interface {
	EnqueueOrderStatusEmail(payload queue.OrderStatusEmailPayload, opts ...asynq.Option) error
}

// OrderService 订单服务
type OrderService struct {
	cfg         config.OrderConfig
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    OrderStatusNotifier
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(cfg config.OrderConfig, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, notifier OrderStatusNotifier) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// CreateOrderItemInput 下单商品项
type CreateOrderItemInput struct {
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID          uint
	ShippingAddress string
	TotalAmount     *decimal.Decimal
	Items           []CreateOrderItemInput
}

// CreateOrder 在一个事务内创建订单与全部订单项
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	address := strings.TrimSpace(input.ShippingAddress)
	if address == "" {
		return nil, ErrShippingAddressMissing
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderItemsEmpty
	}

	productIDs := make([]uint, 0, len(input.Items))
	seen := make(map[uint]bool, len(input.Items))
	itemsTotal := decimal.Zero
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity < 1 || item.Price.IsNegative() {
			return nil, ErrOrderItemInvalid
		}
		itemsTotal = itemsTotal.Add(item.Price.Round(2).Mul(decimal.NewFromInt(int64(item.Quantity))))
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, ErrOrderProductNotFound
	}

	total, err := s.resolveTotal(input.TotalAmount, itemsTotal.Round(2))
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		productID := item.ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			Quantity:  item.Quantity,
			Price:     models.NewMoneyFromDecimal(item.Price),
		})
	}

	now := s.now()
	order := &models.Order{
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		ShippingAddress: address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx.WithContext(ctx))
		number, err := s.nextOrderNumber(repo)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return repo.Create(order, items)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, err
	}

	created, err := s.orderRepo.GetByIDAndUser(order.ID, input.UserID)
	if err != nil || created == nil {
		return order, nil
	}
	return created, nil
}

func (s *OrderService) resolveTotal(submitted *decimal.Decimal, itemsTotal decimal.Decimal) (decimal.Decimal, error) {
	if submitted == nil {
		return itemsTotal, nil
	}
	client := submitted.Round(2)
	if client.IsNegative() {
		return decimal.Zero, ErrOrderAmountInvalid
	}
	if client.Equal(itemsTotal) {
		return itemsTotal, nil
	}
	if s.cfg.TrustClientTotal {
		logger.Warnw("order_total_mismatch_trusted",
			"client_total", client.StringFixed(2),
			"items_total", itemsTotal.StringFixed(2),
		)
		return client, nil
	}
	return decimal.Zero, ErrOrderAmountMismatch
}

func (s *OrderService) nextOrderNumber(repo repository.OrderRepository) (string, error) {
	for attempt := 0; attempt < constants.OrderNumberMaxAttempts; attempt++ {
		number, err := generateOrderNumber(constants.OrderNumberLength)
		if err != nil {
			return "", err
		}
		exists, err := repo.ExistsByOrderNumber(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
		logger.Warnw("order_number_collision", "order_number", number, "attempt", attempt+1)
	}
	return "", ErrOrderNumberExhausted
}

// CancelOrder 用户取消待确认订单
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotCancellable
	}
	now := s.now()
	ok, err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at": now,
		"updated_at":   now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotCancellable
	}
	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now
	s.notifyStatus(ctx, order.ID, order.Status)
	return order, nil
}

// UpdateOrderStatus 管理端推进订单状态
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, targetStatus string) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if _, ok := constants.OrderStatusDisplay[target]; !ok {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	now := s.now()
	updates := map[string]interface{}{"updated_at": now}
	if target == constants.OrderStatusCancelled {
		updates["cancelled_at"] = now
	}
	ok, err := s.orderRepo.UpdateStatus(order.ID, order.Status, target, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderStatusInvalid
	}
	order.Status = target
	order.UpdatedAt = now
	if target == constants.OrderStatusCancelled {
		order.CancelledAt = &now
	}
	s.notifyStatus(ctx, order.ID, target)
	return order, nil
}

// GetOrderByUser 获取用户自己的订单
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return []models.Order{}, 0, nil
	}
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) notifyStatus(ctx context.Context, orderID uint, status string) {
	if !s.cfg.StatusEmail || s.notifier == nil || orderID == 0 {
		return
	}
	if err := ctx.Err(); err != nil {
		return
	}
	if err := s.notifier.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{OrderID: orderID, Status: status}); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func isTransitionAllowed(current, target string) bool {
	return allowedTransitions[current][target]
}

func generateOrderNumber(length int) (string, error) {
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = orderNumberAlphabet[n.Int64()]
	}
	return string(buf), nil
}
