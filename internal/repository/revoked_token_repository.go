package repository

import (
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokedTokenRepository 刷新令牌黑名单数据访问接口
type RevokedTokenRepository interface {
	Revoke(jti string, userID uint, expiresAt time.Time) (bool, error)
	Exists(jti string) (bool, error)
	PurgeExpired(before time.Time) (int64, error)
}

// GormRevokedTokenRepository GORM 实现
type GormRevokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository 创建黑名单仓库
func NewRevokedTokenRepository(db *gorm.DB) *GormRevokedTokenRepository {
	return &GormRevokedTokenRepository{db: db}
}

// Revoke 写入黑名单，已存在时返回 false
func (r *GormRevokedTokenRepository) Revoke(jti string, userID uint, expiresAt time.Time) (bool, error) {
	row := models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Exists 判断令牌是否已作废
func (r *GormRevokedTokenRepository) Exists(jti string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeExpired 清理已自然过期的黑名单记录
func (r *GormRevokedTokenRepository) PurgeExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", before).Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
