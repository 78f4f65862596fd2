package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/cache"
	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims 用户会话 JWT 声明
type SessionClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenType    string `json:"token_type"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// SessionPair 访问令牌与刷新令牌
type SessionPair struct {
	AccessToken      string    `json:"token"`
	RefreshToken     string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// SessionService 用户会话签发、轮换与注销
type SessionService struct {
	cfg         config.UserJWTConfig
	userRepo    repository.UserRepository
	revokedRepo repository.RevokedTokenRepository
	now         func() time.Time
}

// NewSessionService 创建会话服务
func NewSessionService(cfg config.UserJWTConfig, userRepo repository.UserRepository, revokedRepo repository.RevokedTokenRepository) *SessionService {
	return &SessionService{
		cfg:         cfg,
		userRepo:    userRepo,
		revokedRepo: revokedRepo,
		now:         time.Now,
	}
}

// SetClock 替换时间来源
func (s *SessionService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

func (s *SessionService) accessTTL() time.Duration {
	minutes := s.cfg.AccessExpireMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

func (s *SessionService) refreshTTL() time.Duration {
	return time.Duration(resolveHours(s.cfg.RefreshExpireHours, 24)) * time.Hour
}

// Mint 为用户签发一组新的会话令牌
func (s *SessionService) Mint(user *models.User) (*SessionPair, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUserNotFound
	}
	if strings.TrimSpace(s.cfg.SecretKey) == "" {
		return nil, ErrSessionSecretNotSet
	}
	now := s.now()
	access, accessExp, err := s.sign(user, constants.SessionTokenTypeAccess, now, s.accessTTL())
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.sign(user, constants.SessionTokenTypeRefresh, now, s.refreshTTL())
	if err != nil {
		return nil, err
	}
	return &SessionPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *SessionService) sign(user *models.User, tokenType string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := SessionClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenType:    tokenType,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *SessionService) parse(tokenString, tokenType string) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.TokenType != tokenType || claims.UserID == 0 {
		return nil, errors.New("unexpected session token type")
	}
	return claims, nil
}

// ParseAccessToken 解析访问令牌
func (s *SessionService) ParseAccessToken(tokenString string) (*SessionClaims, error) {
	claims, err := s.parse(tokenString, constants.SessionTokenTypeAccess)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}

// ParseRefreshToken 解析刷新令牌
func (s *SessionService) ParseRefreshToken(tokenString string) (*SessionClaims, error) {
	claims, err := s.parse(tokenString, constants.SessionTokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	return claims, nil
}

// Refresh 轮换刷新令牌：旧令牌加入黑名单后签发新的一组令牌
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*SessionPair, error) {
	claims, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRefreshTokenRevoked
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive || user.Status == constants.UserStatusDisabled {
		return nil, ErrInvalidRefreshToken
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidRefreshToken
	}

	first, err := s.revoke(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, ErrRefreshTokenRevoked
	}
	return s.Mint(user)
}

// Logout 注销当前用户的刷新令牌；令牌缺失、无效或属于其他用户时返回 ErrInvalidRefreshToken
func (s *SessionService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrInvalidRefreshToken
	}
	claims, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	if userID == 0 || claims.UserID != userID {
		logger.Warnw("session_logout_user_mismatch", "user_id", userID, "token_user_id", claims.UserID)
		return ErrInvalidRefreshToken
	}
	if _, err := s.revoke(ctx, claims); err != nil {
		return err
	}
	return nil
}

// revoke 以数据库为准记录黑名单，Redis 仅作为快速判定
func (s *SessionService) revoke(ctx context.Context, claims *SessionClaims) (bool, error) {
	expiresAt := s.now().Add(s.refreshTTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	first, err := s.revokedRepo.Revoke(claims.ID, claims.UserID, expiresAt)
	if err != nil {
		return false, err
	}
	if cache.Enabled() {
		if _, err := cache.BlacklistRefreshToken(ctx, claims.ID, expiresAt.Sub(s.now())); err != nil {
			logger.Warnw("session_refresh_blacklist_cache_failed", "jti", claims.ID, "error", err)
		}
	}
	return first, nil
}

func (s *SessionService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if cache.Enabled() {
		listed, err := cache.IsRefreshTokenBlacklisted(ctx, jti)
		if err == nil && listed {
			return true, nil
		}
		if err != nil {
			logger.Warnw("session_refresh_blacklist_lookup_failed", "jti", jti, "error", err)
		}
	}
	return s.revokedRepo.Exists(jti)
}

// PurgeExpiredRevocations 清理已过期的黑名单记录
func (s *SessionService) PurgeExpiredRevocations() (int64, error) {
	return s.revokedRepo.PurgeExpired(s.now())
}
