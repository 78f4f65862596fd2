package models

import "time"

// Slider 首页轮播图
type Slider struct {
	ID          uint      `gorm:"primarykey" json:"id"`                           // 主键
	Title       string    `gorm:"type:varchar(200)" json:"title"`                 // 标题
	Description string    `gorm:"type:text" json:"description"`                   // 描述
	Image       string    `gorm:"type:varchar(500);not null" json:"image"`        // 图片
	URL         string    `gorm:"type:varchar(200);not null" json:"url"`          // 跳转地址
	ButtonText  string    `gorm:"type:varchar(50);not null" json:"button_text"`   // 按钮文案
	SortOrder   int       `gorm:"column:sort_order;default:0;index" json:"order"` // 排序
	IsActive    bool      `gorm:"not null;index" json:"is_active"`                // 是否启用
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                     // 更新时间
}

// TableName 指定表名
func (Slider) TableName() string {
	return "sliders"
}
