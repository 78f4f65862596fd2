package models

import (
	"strings"
	"time"
)

// User 用户表
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                   // 主键
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`                      // 邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	FirstName          string     `gorm:"type:varchar(30);not null;default:''" json:"first_name"` // 名
	LastName           string     `gorm:"type:varchar(30);not null;default:''" json:"last_name"`  // 姓
	Phone              string     `gorm:"type:varchar(15)" json:"phone"`                          // 手机号
	AddressTitle       string     `gorm:"type:varchar(100)" json:"address_title"`                 // 地址标题
	Address            string     `gorm:"type:text" json:"address"`                               // 详细地址
	City               string     `gorm:"type:varchar(100)" json:"city"`                          // 城市
	District           string     `gorm:"type:varchar(100)" json:"district"`                      // 区县
	PostalCode         string     `gorm:"type:varchar(10)" json:"postal_code"`                    // 邮编
	Locale             string     `gorm:"default:'tr-TR'" json:"locale"`                          // 语言偏好
	IsEmailVerified    bool       `gorm:"not null;default:false" json:"is_email_verified"`        // 邮箱是否已验证
	TwoFactorEnabled   bool       `gorm:"not null;default:false" json:"two_factor_enabled"`       // 是否开启二次验证
	IsActive           bool       `gorm:"not null;default:false;index" json:"is_active"`          // 是否激活（邮箱验证后激活）
	Status             string     `gorm:"default:'active'" json:"status"`                         // 账号状态（后台可禁用）
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                            // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`                                         // 该时间点前签发的 Token 失效
	EmailVerifiedAt    *time.Time `json:"email_verified_at"`                                      // 邮箱验证时间
	LastLoginAt        *time.Time `json:"last_login_at"`                                          // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"date_joined"`                               // 注册时间
	UpdatedAt          time.Time  `gorm:"index" json:"updated_at"`                                // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 返回姓名
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
