package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthMailer 认证类邮件发送接口
type AuthMailer interface {
	SendVerificationEmail(ctx context.Context, user *models.User, token, locale string) error
	SendPasswordResetEmail(ctx context.Context, user *models.User, token, locale string) error
	SendTwoFactorCode(ctx context.Context, user *models.User, code, locale string) error
}

// TokenService 邮箱验证、重置密码与二次验证令牌的签发与校验
type TokenService struct {
	cfg    config.AuthTokenConfig
	repo   repository.AuthTokenRepository
	mailer AuthMailer
	now    func() time.Time
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg config.AuthTokenConfig, repo repository.AuthTokenRepository, mailer AuthMailer) *TokenService {
	return &TokenService{
		cfg:    cfg,
		repo:   repo,
		mailer: mailer,
		now:    time.Now,
	}
}

// SetClock 替换时间来源
func (s *TokenService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// TTL 返回用途对应的有效期
func (s *TokenService) TTL(purpose string) time.Duration {
	switch purpose {
	case constants.AuthTokenPurposeEmailVerify:
		return time.Duration(resolveHours(s.cfg.VerifyExpireHours, 72)) * time.Hour
	case constants.AuthTokenPurposePasswordReset:
		return time.Duration(resolveHours(s.cfg.ResetExpireHours, 24)) * time.Hour
	case constants.AuthTokenPurposeTwoFactor:
		minutes := s.cfg.TwoFactorExpireMinutes
		if minutes <= 0 {
			minutes = 10
		}
		return time.Duration(minutes) * time.Minute
	default:
		return 0
	}
}

// Issue 在同一事务中作废该用途下所有未使用令牌并写入新令牌
func (s *TokenService) Issue(ctx context.Context, purpose string, user *models.User) (*models.AuthToken, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUserNotFound
	}
	value, err := s.generateValue(purpose)
	if err != nil {
		return nil, err
	}
	token := &models.AuthToken{
		UserID:    user.ID,
		Purpose:   purpose,
		Token:     value,
		CreatedAt: s.now(),
	}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx.WithContext(ctx))
		if err := repo.InvalidateActive(user.ID, purpose); err != nil {
			return err
		}
		return repo.Create(token)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Send 通过邮件投递令牌，投递失败直接返回错误
func (s *TokenService) Send(ctx context.Context, token *models.AuthToken, user *models.User, locale string) error {
	if s.mailer == nil {
		return ErrEmailServiceNotConfigured
	}
	switch token.Purpose {
	case constants.AuthTokenPurposeEmailVerify:
		return s.mailer.SendVerificationEmail(ctx, user, token.Token, locale)
	case constants.AuthTokenPurposePasswordReset:
		return s.mailer.SendPasswordResetEmail(ctx, user, token.Token, locale)
	case constants.AuthTokenPurposeTwoFactor:
		return s.mailer.SendTwoFactorCode(ctx, user, token.Token, locale)
	default:
		return ErrInvalidTokenPurpose
	}
}

// IssueAndSend 签发并发送令牌
func (s *TokenService) IssueAndSend(ctx context.Context, purpose string, user *models.User, locale string) (*models.AuthToken, error) {
	token, err := s.Issue(ctx, purpose, user)
	if err != nil {
		return nil, err
	}
	if err := s.Send(ctx, token, user, locale); err != nil {
		return nil, err
	}
	return token, nil
}

// Validate 校验邮箱验证或重置密码令牌，成功后标记已使用并返回所属用户
func (s *TokenService) Validate(ctx context.Context, purpose, identifier string) (*models.User, error) {
	if purpose != constants.AuthTokenPurposeEmailVerify && purpose != constants.AuthTokenPurposePasswordReset {
		return nil, ErrInvalidTokenPurpose
	}
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, ErrTokenMalformed
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	token, err := s.repo.GetActiveByToken(purpose, parsed.String())
	if err != nil {
		return nil, err
	}
	return s.consume(token, ErrTokenNotFound, ErrTokenExpired)
}

// ValidateTwoFactor 按用户与验证码取最新一条未使用记录进行校验
func (s *TokenService) ValidateTwoFactor(ctx context.Context, userID uint, code string) (*models.User, error) {
	if userID == 0 {
		return nil, ErrTwoFactorCodeInvalid
	}
	code = strings.TrimSpace(code)
	var token *models.AuthToken
	if code != "" && isDigits(code) {
		found, err := s.repo.GetLatestActiveByUserAndToken(userID, constants.AuthTokenPurposeTwoFactor, code)
		if err != nil {
			return nil, err
		}
		token = found
	}
	if token == nil {
		return nil, s.rejectTwoFactor(userID)
	}
	return s.consume(token, ErrTwoFactorCodeInvalid, ErrTwoFactorCodeExpired)
}

// rejectTwoFactor 记录一次错误验证码，次数用尽后当前验证码作废
func (s *TokenService) rejectTwoFactor(userID uint) error {
	exhausted, err := s.repo.RecordFailedAttempt(userID, constants.AuthTokenPurposeTwoFactor, s.maxTwoFactorAttempts())
	if err != nil {
		return err
	}
	if exhausted {
		logger.Warnw("two_factor_attempts_exhausted", "user_id", userID)
		return ErrTwoFactorAttemptsExceeded
	}
	return ErrTwoFactorCodeInvalid
}

func (s *TokenService) maxTwoFactorAttempts() int {
	if s.cfg.TwoFactorMaxAttempts <= 0 {
		return 5
	}
	return s.cfg.TwoFactorMaxAttempts
}

func (s *TokenService) consume(token *models.AuthToken, notFound, expired error) (*models.User, error) {
	if token == nil {
		return nil, notFound
	}
	if token.IsExpired(s.now(), s.TTL(token.Purpose)) {
		return nil, expired
	}
	marked, err := s.repo.MarkUsed(token.ID)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, notFound
	}
	user := token.User
	if user.ID == 0 {
		return nil, notFound
	}
	return &user, nil
}

func (s *TokenService) generateValue(purpose string) (string, error) {
	switch purpose {
	case constants.AuthTokenPurposeEmailVerify, constants.AuthTokenPurposePasswordReset:
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case constants.AuthTokenPurposeTwoFactor:
		return randomNumericCode(resolveCodeLength(s.cfg.TwoFactorLength))
	default:
		return "", ErrInvalidTokenPurpose
	}
}

// IsTokenError 判断是否为令牌校验类错误
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTwoFactorCodeInvalid) ||
		errors.Is(err, ErrTwoFactorCodeExpired) ||
		errors.Is(err, ErrTwoFactorAttemptsExceeded)
}

func resolveCodeLength(length int) int {
	if length < 4 || length > 10 {
		return 6
	}
	return length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
