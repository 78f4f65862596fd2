package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/metrics"
	"github.com/Selinclb/eticaretsitesi/internal/provider"
	"github.com/Selinclb/eticaretsitesi/internal/queue"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.Use(taskMetricsMiddleware)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskRevokedTokenPurge, c.handleRevokedTokenPurge)
}

func taskMetricsMiddleware(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		err := next.ProcessTask(ctx, task)
		metrics.RecordTask(task.Type(), err)
		return err
	})
}

func (c *Consumer) handleOrderStatusEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_number", order.OrderNumber)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_number", order.OrderNumber)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNumber: order.OrderNumber,
		Status:      status,
		Amount:      order.TotalAmount,
		FullName:    user.FullName(),
	}
	if err := c.EmailService.SendOrderStatusEmail(ctx, user.Email, input, user.Locale); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_number", order.OrderNumber,
			"receiver_email", user.Email,
			"status", status,
			"error", err,
		)
		if errors.Is(err, service.ErrEmailRecipientRejected) ||
			errors.Is(err, service.ErrEmailServiceDisabled) ||
			errors.Is(err, service.ErrInvalidEmail) {
			return errors.Join(err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

func (c *Consumer) handleRevokedTokenPurge(_ context.Context, _ *asynq.Task) error {
	if c == nil || c.Container == nil || c.SessionService == nil {
		return nil
	}
	purged, err := c.SessionService.PurgeExpiredRevocations()
	if err != nil {
		logger.Warnw("worker_revoked_token_purge_failed", "error", err)
		return err
	}
	if purged > 0 {
		logger.Infow("worker_revoked_token_purged", "count", purged)
	}
	return nil
}
