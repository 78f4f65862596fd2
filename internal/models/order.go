package models

import (
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
)

// Order 订单表
type Order struct {
	ID              uint       `gorm:"primarykey" json:"id"`                                      // 主键
	UserID          uint       `gorm:"index;not null" json:"user_id"`                             // 用户ID
	OrderNumber     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"` // 订单编号
	Status          string     `gorm:"type:varchar(20);index;not null" json:"status"`             // 订单状态
	TotalAmount     Money      `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"` // 订单总额
	ShippingAddress string     `gorm:"type:text;not null" json:"shipping_address"`                // 收货地址
	CancelledAt     *time.Time `gorm:"index" json:"cancelled_at,omitempty"`                       // 取消时间
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time  `gorm:"index" json:"updated_at"`                                   // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"-"`                // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// StatusDisplay 订单状态展示文案
func (o Order) StatusDisplay() string {
	if display, ok := constants.OrderStatusDisplay[o.Status]; ok {
		return display
	}
	return o.Status
}

// ItemsTotal 订单项小计之和
func (o Order) ItemsTotal() Money {
	total := Money{}
	for _, item := range o.Items {
		total = NewMoneyFromDecimal(total.Add(item.Price.MulInt(item.Quantity).Decimal))
	}
	return total
}
