package public

import (
	"errors"
	"io"
	"strings"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/i18n"
	"github.com/Selinclb/eticaretsitesi/internal/metrics"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email           string                              `json:"email" binding:"required"`
	Password        string                              `json:"password" binding:"required"`
	PasswordConfirm string                              `json:"password_confirm" binding:"required"`
	FirstName       string                              `json:"first_name" binding:"required"`
	LastName        string                              `json:"last_name" binding:"required"`
	Phone           string                              `json:"phone"`
	CaptchaPayload  handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserRegister 用户注册，账号在邮箱验证前保持未激活
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.checkCaptcha(constants.CaptchaSceneRegister, req.CaptchaPayload); err != nil {
		respondCaptchaError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	user, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Locale:          locale,
	})
	if err != nil {
		fallbackKey := "error.register_failed"
		if user != nil {
			fallbackKey = "error.email_send_failed"
		}
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, fallbackKey)
		return
	}

	response.Created(c, i18n.T(locale, "auth.register_success"), gin.H{
		"user": userProfileView(user),
	})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLogin 用户密码登录；开启二次验证时只返回 requires_2fa
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordUserLogin(c, req.Email, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest, constants.LoginLogSourcePassword)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.checkCaptcha(constants.CaptchaSceneLogin, req.CaptchaPayload); err != nil {
		h.recordUserLogin(c, req.Email, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonCaptchaInvalid, constants.LoginLogSourcePassword)
		respondCaptchaError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	result, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password, locale)
	if err != nil {
		h.recordUserLogin(c, req.Email, loginResultUserID(result), constants.LoginLogStatusFailed, loginFailReason(err), constants.LoginLogSourcePassword)
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	if result.RequiresTwoFactor {
		response.Success(c, gin.H{
			"requires_2fa": true,
			"email":        result.Email,
			"message":      i18n.T(locale, "auth.two_factor_sent"),
		})
		return
	}

	h.recordUserLogin(c, result.User.Email, result.User.ID, constants.LoginLogStatusSuccess, "", constants.LoginLogSourcePassword)
	response.Success(c, sessionView(result.Session, result.User))
}

// TwoFactorVerifyRequest 二次验证请求
type TwoFactorVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyTwoFactor 校验二次验证码并签发会话
func (h *Handler) VerifyTwoFactor(c *gin.Context) {
	var req TwoFactorVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.UserAuthService.VerifyTwoFactor(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.recordUserLogin(c, req.Email, loginResultUserID(result), constants.LoginLogStatusFailed, loginFailReason(err), constants.LoginLogSourceTwoFactor)
		respondWithMappedError(c, err, authTokenErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	h.recordUserLogin(c, result.User.Email, result.User.ID, constants.LoginLogStatusSuccess, "", constants.LoginLogSourceTwoFactor)
	response.Success(c, sessionView(result.Session, result.User))
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail 消费邮箱验证令牌，激活账号并直接登录
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.UserAuthService.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		respondWithMappedError(c, err, authTokenErrorRules, response.CodeInternal, "error.verify_email_failed")
		return
	}

	h.recordUserLogin(c, result.User.Email, result.User.ID, constants.LoginLogStatusSuccess, "", constants.LoginLogSourceEmail)
	data := sessionView(result.Session, result.User)
	data["message"] = i18n.T(i18n.ResolveLocale(c), "auth.email_verified")
	response.Success(c, data)
}

// ResendVerificationRequest 重发验证邮件请求
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResendVerification 重新发送邮箱验证邮件
func (h *Handler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.UserAuthService.ResendVerification(c.Request.Context(), req.Email, locale); err != nil {
		respondWithMappedError(c, err, resendVerificationErrorRules, response.CodeInternal, "error.email_send_failed")
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "auth.verification_resent"), gin.H{"sent": true})
}

// PasswordResetRequest 申请重置密码请求
type PasswordResetRequest struct {
	Email          string                              `json:"email" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// RequestPasswordReset 发送重置密码邮件；邮箱是否注册都返回相同响应
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.checkCaptcha(constants.CaptchaScenePasswordReset, req.CaptchaPayload); err != nil {
		respondCaptchaError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.UserAuthService.RequestPasswordReset(c.Request.Context(), req.Email, locale); err != nil {
		respondWithMappedError(c, err, passwordResetErrorRules, response.CodeInternal, "error.email_send_failed")
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "auth.password_reset_sent"), gin.H{"sent": true})
}

// PasswordResetConfirmRequest 确认重置密码请求
type PasswordResetConfirmRequest struct {
	Token              string `json:"token" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// ConfirmPasswordReset 使用重置令牌设置新密码
func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.UserAuthService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword, req.NewPasswordConfirm); err != nil {
		respondWithMappedError(c, err, passwordResetConfirmErrorRules, response.CodeInternal, "error.reset_failed")
		return
	}

	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.password_reset_done"), gin.H{"reset": true})
}

// EnableTwoFactor 开启二次验证
func (h *Handler) EnableTwoFactor(c *gin.Context) {
	h.setTwoFactor(c, true)
}

// DisableTwoFactor 关闭二次验证
func (h *Handler) DisableTwoFactor(c *gin.Context) {
	h.setTwoFactor(c, false)
}

func (h *Handler) setTwoFactor(c *gin.Context, enabled bool) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.SetTwoFactor(uid, enabled)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	key := "auth.two_factor_disabled"
	if enabled {
		key = "auth.two_factor_enabled"
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), key), gin.H{
		"two_factor_enabled": user.TwoFactorEnabled,
	})
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, userProfileView(user))
}

// UpdateProfileRequest 资料更新请求，未提交的字段保持不变
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	AddressTitle *string `json:"address_title"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	District     *string `json:"district"`
	PostalCode   *string `json:"postal_code"`
	Locale       *string `json:"locale"`
}

// UpdateProfile 部分更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(uid, service.ProfileUpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		AddressTitle: req.AddressTitle,
		Address:      req.Address,
		City:         req.City,
		District:     req.District,
		PostalCode:   req.PostalCode,
		Locale:       req.Locale,
	})
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, userProfileView(user))
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword 修改密码，旧会话全部失效并返回新会话
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.UserAuthService.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(profileErrorRules, sessionErrorRules), response.CodeInternal, "error.save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.password_changed"), gin.H{
		"token":   session.AccessToken,
		"refresh": session.RefreshToken,
	})
}

// DeleteAccountRequest 注销账号请求
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// DeleteAccount 校验密码后删除账号
func (h *Handler) DeleteAccount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.UserAuthService.DeleteAccount(c.Request.Context(), uid, req.Password); err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.account_deleted"), nil)
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshToken 轮换刷新令牌
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.UserAuthService.RefreshSession(c.Request.Context(), req.Refresh)
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.token_refresh_failed")
		return
	}
	response.Success(c, gin.H{
		"token":   session.AccessToken,
		"refresh": session.RefreshToken,
	})
}

// LogoutRequest 注销请求
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout 注销刷新令牌；令牌缺失或无效只返回 400
func (h *Handler) Logout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.UserAuthService.Logout(c.Request.Context(), uid, req.RefreshToken); err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.logout_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "auth.logged_out"), nil)
}

func (h *Handler) checkCaptcha(scene string, payload handlershared.CaptchaPayloadRequest) error {
	if h.CaptchaService == nil {
		return nil
	}
	return h.CaptchaService.Verify(scene, payload.ToServicePayload())
}

func respondCaptchaError(c *gin.Context, err error) {
	respondWithMappedError(c, err, handlershared.CaptchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
}

func (h *Handler) recordUserLogin(c *gin.Context, email string, userID uint, status, failReason, source string) {
	result := status
	if failReason != "" {
		result = failReason
	}
	metrics.RecordLogin(result)
	if h == nil || h.UserLoginLogService == nil {
		return
	}
	requestID := ""
	if rid, ok := c.Get("request_id"); ok {
		if value, ok := rid.(string); ok {
			requestID = strings.TrimSpace(value)
		}
	}
	if err := h.UserLoginLogService.Record(service.RecordUserLoginInput{
		UserID:      userID,
		Email:       email,
		Status:      status,
		FailReason:  failReason,
		ClientIP:    c.ClientIP(),
		UserAgent:   c.GetHeader("User-Agent"),
		LoginSource: source,
		RequestID:   requestID,
	}); err != nil {
		handlershared.RequestLog(c).Warnw("user_login_log_record_failed", "email", email, "error", err)
	}
}

func loginResultUserID(result *service.LoginResult) uint {
	if result == nil || result.User == nil {
		return 0
	}
	return result.User.ID
}

func loginFailReason(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return constants.LoginLogFailReasonInvalidEmail
	case errors.Is(err, service.ErrInvalidCredentials):
		return constants.LoginLogFailReasonInvalidCredentials
	case errors.Is(err, service.ErrEmailNotVerified):
		return constants.LoginLogFailReasonEmailNotVerified
	case errors.Is(err, service.ErrUserDisabled):
		return constants.LoginLogFailReasonUserDisabled
	case errors.Is(err, service.ErrTwoFactorCodeInvalid), errors.Is(err, service.ErrTwoFactorCodeExpired):
		return constants.LoginLogFailReasonTwoFactorInvalid
	case errors.Is(err, service.ErrEmailServiceDisabled),
		errors.Is(err, service.ErrEmailServiceNotConfigured),
		errors.Is(err, service.ErrEmailRecipientRejected):
		return constants.LoginLogFailReasonTwoFactorSendFailed
	default:
		return constants.LoginLogFailReasonInternalError
	}
}

func sessionView(session *service.SessionPair, user *models.User) gin.H {
	return gin.H{
		"token":              session.AccessToken,
		"refresh":            session.RefreshToken,
		"access_expires_at":  session.AccessExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		"refresh_expires_at": session.RefreshExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		"user":               userProfileView(user),
	}
}

func userProfileView(user *models.User) gin.H {
	return gin.H{
		"id":                 user.ID,
		"email":              user.Email,
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"phone":              user.Phone,
		"address_title":      user.AddressTitle,
		"address":            user.Address,
		"city":               user.City,
		"district":           user.District,
		"postal_code":        user.PostalCode,
		"locale":             user.Locale,
		"is_email_verified":  user.IsEmailVerified,
		"two_factor_enabled": user.TwoFactorEnabled,
		"is_active":          user.IsActive,
		"date_joined":        user.CreatedAt,
	}
}
