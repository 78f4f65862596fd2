package models

import "time"

// AuthToken 认证令牌记录（邮箱验证 / 重置密码 / 二次验证码）
type AuthToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	UserID    uint      `gorm:"index:idx_auth_token_user_purpose;not null" json:"user_id"`                  // 关联用户ID
	Purpose   string    `gorm:"type:varchar(32);index:idx_auth_token_user_purpose;not null" json:"purpose"` // 用途
	Token     string    `gorm:"type:varchar(64);index;not null" json:"-"`                                   // 令牌或验证码（不返回给前端）
	IsUsed    bool      `gorm:"not null;default:false;index" json:"is_used"`                                // 是否已使用
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`                                         // 验证码错误尝试次数
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                    // 创建时间

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // 关联用户
}

// TableName 指定表名
func (AuthToken) TableName() string {
	return "auth_tokens"
}

// IsExpired 判断令牌在给定时间是否已超过有效期
func (t AuthToken) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.After(t.CreatedAt.Add(ttl))
}
