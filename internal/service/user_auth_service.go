package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/cache"
	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash 用户不存在时参与比对，使两种失败耗时一致
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("eticaret-dummy-password"), bcrypt.DefaultCost)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	tokens   *TokenService
	sessions *SessionService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, tokens *TokenService, sessions *SessionService) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Phone           string
	Locale          string
}

// LoginResult 登录结果：要么携带会话，要么要求二次验证
type LoginResult struct {
	User              *models.User
	Session           *SessionPair
	RequiresTwoFactor bool
	Email             string
}

// Register 创建未激活账号并发送验证邮件
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	if len([]rune(firstName)) > 30 || len([]rune(lastName)) > 30 || len([]rune(strings.TrimSpace(input.Phone))) > 15 {
		return nil, ErrProfileFieldInvalid
	}
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password, normalized); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &models.User{
		Email:        normalized,
		PasswordHash: string(hashed),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        strings.TrimSpace(input.Phone),
		Locale:       resolveUserLocale(nil, input.Locale),
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if _, err := s.tokens.IssueAndSend(ctx, constants.AuthTokenPurposeEmailVerify, user, user.Locale); err != nil {
		logger.Warnw("user_register_send_verify_failed", "user_id", user.ID, "error", err)
		return user, err
	}
	return user, nil
}

// Login 密码登录；开启二次验证时只发送验证码，不签发会话
func (s *UserAuthService) Login(ctx context.Context, email, password, locale string) (*LoginResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return &LoginResult{User: user}, ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return &LoginResult{User: user}, ErrEmailNotVerified
	}
	if user.Status == constants.UserStatusDisabled || !user.IsActive {
		return &LoginResult{User: user}, ErrUserDisabled
	}

	if user.TwoFactorEnabled {
		if _, err := s.tokens.IssueAndSend(ctx, constants.AuthTokenPurposeTwoFactor, user, locale); err != nil {
			return &LoginResult{User: user}, err
		}
		return &LoginResult{User: user, RequiresTwoFactor: true, Email: user.Email}, nil
	}
	return s.completeLogin(ctx, user)
}

// VerifyTwoFactor 校验二次验证码并签发会话
func (s *UserAuthService) VerifyTwoFactor(ctx context.Context, email, code string) (*LoginResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrTwoFactorCodeInvalid
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTwoFactorCodeInvalid
	}
	if _, err := s.tokens.ValidateTwoFactor(ctx, user.ID, code); err != nil {
		return &LoginResult{User: user}, err
	}
	if user.Status == constants.UserStatusDisabled {
		return &LoginResult{User: user}, ErrUserDisabled
	}
	return s.completeLogin(ctx, user)
}

// VerifyEmail 消费邮箱验证令牌，激活账号并签发会话
func (s *UserAuthService) VerifyEmail(ctx context.Context, token string) (*LoginResult, error) {
	user, err := s.tokens.Validate(ctx, constants.AuthTokenPurposeEmailVerify, token)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"is_email_verified": true,
		"is_active":         true,
		"email_verified_at": now,
		"updated_at":        now,
	}); err != nil {
		return nil, err
	}
	user.IsEmailVerified = true
	user.IsActive = true
	user.EmailVerifiedAt = &now
	return s.completeLogin(ctx, user)
}

// ResendVerification 重新发送邮箱验证邮件
func (s *UserAuthService) ResendVerification(ctx context.Context, email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsEmailVerified {
		return ErrEmailAlreadyVerified
	}
	_, err = s.tokens.IssueAndSend(ctx, constants.AuthTokenPurposeEmailVerify, user, locale)
	return err
}

// RequestPasswordReset 发送重置密码链接；邮箱未注册或投递失败时都静默成功，避免暴露账号是否存在
func (s *UserAuthService) RequestPasswordReset(ctx context.Context, email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Debugw("password_reset_unknown_email", "email", normalized)
		return nil
	}
	if _, err := s.tokens.IssueAndSend(ctx, constants.AuthTokenPurposePasswordReset, user, locale); err != nil {
		logger.Errorw("password_reset_send_failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ConfirmPasswordReset 消费重置令牌并设置新密码
func (s *UserAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword, confirm string) error {
	if confirm != "" && newPassword != confirm {
		return ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword, ""); err != nil {
		return err
	}
	user, err := s.tokens.Validate(ctx, constants.AuthTokenPurposePasswordReset, token)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, newPassword)
}

// ChangePassword 登录态修改密码并签发新会话
func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) (*SessionPair, error) {
	if strings.TrimSpace(currentPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return nil, ErrPasswordRequired
	}
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword, user.Email); err != nil {
		return nil, err
	}
	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return nil, err
	}
	return s.sessions.Mint(user)
}

// DeleteAccount 校验密码后删除账号及关联数据
func (s *UserAuthService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	user, err := s.requireUser(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	if err := s.userRepo.DeleteWithRelations(user.ID); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(ctx, user.ID)
	return nil
}

// ProfileUpdateInput 资料更新输入，nil 表示不修改
type ProfileUpdateInput struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	AddressTitle *string
	Address      *string
	City         *string
	District     *string
	PostalCode   *string
	Locale       *string
}

// GetProfile 获取用户资料
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	return s.requireUser(userID)
}

// UpdateProfile 部分更新用户资料，邮箱不可修改
func (s *UserAuthService) UpdateProfile(userID uint, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		value  *string
		target *string
		max    int
		must   bool
	}{
		{input.FirstName, &user.FirstName, 30, true},
		{input.LastName, &user.LastName, 30, true},
		{input.Phone, &user.Phone, 15, false},
		{input.AddressTitle, &user.AddressTitle, 100, false},
		{input.Address, &user.Address, 2000, false},
		{input.City, &user.City, 100, false},
		{input.District, &user.District, 100, false},
		{input.PostalCode, &user.PostalCode, 10, false},
	}
	for _, field := range fields {
		if field.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*field.value)
		if field.must && trimmed == "" {
			return nil, ErrNameRequired
		}
		if len([]rune(trimmed)) > field.max {
			return nil, ErrProfileFieldInvalid
		}
		*field.target = trimmed
	}
	if input.Locale != nil && strings.TrimSpace(*input.Locale) != "" {
		user.Locale = resolveUserLocale(nil, *input.Locale)
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetTwoFactor 开启或关闭二次验证
func (s *UserAuthService) SetTwoFactor(userID uint, enabled bool) (*models.User, error) {
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"two_factor_enabled": enabled,
		"updated_at":         time.Now(),
	}); err != nil {
		return nil, err
	}
	user.TwoFactorEnabled = enabled
	return user, nil
}

// RefreshSession 刷新会话
func (s *UserAuthService) RefreshSession(ctx context.Context, refreshToken string) (*SessionPair, error) {
	return s.sessions.Refresh(ctx, refreshToken)
}

// Logout 注销刷新令牌
func (s *UserAuthService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	return s.sessions.Logout(ctx, userID, refreshToken)
}

// GetUserByID 获取用户
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(id)
}

func (s *UserAuthService) completeLogin(ctx context.Context, user *models.User) (*LoginResult, error) {
	session, err := s.sessions.Mint(user)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		logger.Warnw("user_last_login_update_failed", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return &LoginResult{User: user, Session: session}, nil
}

func (s *UserAuthService) setPassword(ctx context.Context, user *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = string(hashed)
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return nil
}

func (s *UserAuthService) requireUser(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

// IsAuthFailure 判断是否为凭证类失败（用于登录日志原因归类）
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrEmailNotVerified) ||
		errors.Is(err, ErrUserDisabled)
}
