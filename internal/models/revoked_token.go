package models

import "time"

// RevokedToken 已作废的刷新令牌（Redis 不可用时的兜底黑名单）
type RevokedToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`                             // 主键
	JTI       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"jti"` // 令牌唯一标识
	UserID    uint      `gorm:"index" json:"user_id"`                             // 用户ID
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`                          // 令牌原过期时间
	CreatedAt time.Time `json:"created_at"`                                       // 作废时间
}

// TableName 指定表名
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
