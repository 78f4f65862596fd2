package repository

import (
	"errors"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"gorm.io/gorm"
)

// AuthTokenRepository 认证令牌数据访问接口
type AuthTokenRepository interface {
	InvalidateActive(userID uint, purpose string) error
	Create(token *models.AuthToken) error
	GetActiveByToken(purpose, token string) (*models.AuthToken, error)
	GetLatestActiveByUserAndToken(userID uint, purpose, token string) (*models.AuthToken, error)
	MarkUsed(id uint) (bool, error)
	RecordFailedAttempt(userID uint, purpose string, maxAttempts int) (bool, error)
	CountActive(userID uint, purpose string) (int64, error)
	WithTx(tx *gorm.DB) AuthTokenRepository
	Transaction(fn func(tx *gorm.DB) error) error
}

// GormAuthTokenRepository GORM 实现
type GormAuthTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository 创建认证令牌仓库
func NewAuthTokenRepository(db *gorm.DB) *GormAuthTokenRepository {
	return &GormAuthTokenRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAuthTokenRepository) WithTx(tx *gorm.DB) AuthTokenRepository {
	if tx == nil {
		return r
	}
	return &GormAuthTokenRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAuthTokenRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// InvalidateActive 将用户该用途下所有未使用令牌标记为已使用
func (r *GormAuthTokenRepository) InvalidateActive(userID uint, purpose string) error {
	return r.db.Model(&models.AuthToken{}).
		Where("user_id = ? AND purpose = ? AND is_used = ?", userID, purpose, false).
		Update("is_used", true).Error
}

// Create 创建令牌
func (r *GormAuthTokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// GetActiveByToken 按令牌值获取未使用的令牌
func (r *GormAuthTokenRepository) GetActiveByToken(purpose, token string) (*models.AuthToken, error) {
	var row models.AuthToken
	err := r.db.Preload("User").
		Where("purpose = ? AND token = ? AND is_used = ?", purpose, token, false).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetLatestActiveByUserAndToken 获取用户最新的一条匹配且未使用的令牌
func (r *GormAuthTokenRepository) GetLatestActiveByUserAndToken(userID uint, purpose, token string) (*models.AuthToken, error) {
	var row models.AuthToken
	err := r.db.Preload("User").
		Where("user_id = ? AND purpose = ? AND token = ? AND is_used = ?", userID, purpose, token, false).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// MarkUsed 标记令牌已使用，返回是否由本次调用完成标记
func (r *GormAuthTokenRepository) MarkUsed(id uint) (bool, error) {
	result := r.db.Model(&models.AuthToken{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RecordFailedAttempt 累加用户未使用令牌的错误次数，达到上限即作废，返回是否已作废
func (r *GormAuthTokenRepository) RecordFailedAttempt(userID uint, purpose string, maxAttempts int) (bool, error) {
	err := r.db.Model(&models.AuthToken{}).
		Where("user_id = ? AND purpose = ? AND is_used = ?", userID, purpose, false).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return false, err
	}
	if maxAttempts <= 0 {
		return false, nil
	}
	result := r.db.Model(&models.AuthToken{}).
		Where("user_id = ? AND purpose = ? AND is_used = ? AND attempts >= ?", userID, purpose, false, maxAttempts).
		UpdateColumn("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountActive 统计未使用令牌数量
func (r *GormAuthTokenRepository) CountActive(userID uint, purpose string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AuthToken{}).
		Where("user_id = ? AND purpose = ? AND is_used = ?", userID, purpose, false).
		Count(&count).Error
	return count, err
}
