package queue

import (
	"encoding/json"

	"github.com/Selinclb/eticaretsitesi/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskRevokedTokenPurge 清理过期刷新令牌黑名单任务
	TaskRevokedTokenPurge = constants.TaskRevokedTokenPurge
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// ParseOrderStatusEmailPayload 解析订单状态邮件任务载荷
func ParseOrderStatusEmailPayload(task *asynq.Task) (OrderStatusEmailPayload, error) {
	var payload OrderStatusEmailPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// NewRevokedTokenPurgeTask 创建黑名单清理任务
func NewRevokedTokenPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskRevokedTokenPurge, nil)
}
