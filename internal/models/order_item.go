package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                     // 订单ID
	ProductID *uint     `gorm:"index" json:"product"`                               // 商品ID（商品删除后置空）
	Quantity  int       `gorm:"not null" json:"quantity"`                           // 数量
	Price     Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 单价
	Total     Money     `gorm:"type:decimal(10,2);not null;default:0" json:"total"` // 小计
	CreatedAt time.Time `json:"created_at"`                                         // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"` // 商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeSave 每次保存都按数量与单价重算小计
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.Total = i.Price.MulInt(i.Quantity)
	return nil
}
