package models

import "time"

// Review 商品评价表
type Review struct {
	ID                 uint      `gorm:"primarykey" json:"id"`                                              // 主键
	ProductID          uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product_id"`    // 商品ID
	UserID             uint      `gorm:"not null;uniqueIndex:idx_review_product_user;index" json:"user_id"` // 用户ID
	Rating             int       `gorm:"not null" json:"rating"`                                            // 评分（1-5）
	Comment            string    `gorm:"type:text;not null" json:"comment"`                                 // 评价内容
	Pros               string    `gorm:"type:text" json:"pros"`                                             // 优点
	Cons               string    `gorm:"type:text" json:"cons"`                                             // 缺点
	IsVerifiedPurchase bool      `gorm:"not null;default:false" json:"is_verified_purchase"`                // 是否已购买
	IsApproved         bool      `gorm:"not null;default:false;index" json:"is_approved"`                   // 是否审核通过
	CreatedAt          time.Time `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt          time.Time `json:"updated_at"`                                                        // 更新时间

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // 评价用户
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
