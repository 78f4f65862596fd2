package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/i18n"
	"github.com/Selinclb/eticaretsitesi/internal/models"
)

const (
	emailVerifyPath   = "email-dogrulama"
	passwordResetPath = "sifre-sifirlama"
)

// MailDeliverFunc 邮件投递函数
type MailDeliverFunc func(ctx context.Context, to, subject, body string) error

// EmailService 邮件发送服务
type EmailService struct {
	cfg       *config.EmailConfig
	tokenCfg  config.AuthTokenConfig
	deliverFn MailDeliverFunc
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig, tokenCfg config.AuthTokenConfig) *EmailService {
	s := &EmailService{cfg: cfg, tokenCfg: tokenCfg}
	s.deliverFn = s.sendSMTP
	return s
}

// SetDeliver 替换投递实现
func (s *EmailService) SetDeliver(fn MailDeliverFunc) {
	if fn == nil {
		s.deliverFn = s.sendSMTP
		return
	}
	s.deliverFn = fn
}

// SendVerificationEmail 发送邮箱验证链接
func (s *EmailService) SendVerificationEmail(ctx context.Context, user *models.User, token, locale string) error {
	link := s.buildFrontendLink(emailVerifyPath, token)
	locale = resolveUserLocale(user, locale)
	subject := i18n.T(locale, "email.verify.subject")
	body := i18n.Sprintf(locale, "email.verify.body", displayName(user), link, resolveHours(s.tokenCfg.VerifyExpireHours, 72))
	return s.deliver(ctx, user.Email, subject, body)
}

// SendPasswordResetEmail 发送密码重置链接
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, user *models.User, token, locale string) error {
	link := s.buildFrontendLink(passwordResetPath, token)
	locale = resolveUserLocale(user, locale)
	subject := i18n.T(locale, "email.reset.subject")
	body := i18n.Sprintf(locale, "email.reset.body", displayName(user), link, resolveHours(s.tokenCfg.ResetExpireHours, 24))
	return s.deliver(ctx, user.Email, subject, body)
}

// SendTwoFactorCode 发送登录二次验证码
func (s *EmailService) SendTwoFactorCode(ctx context.Context, user *models.User, code, locale string) error {
	locale = resolveUserLocale(user, locale)
	minutes := s.tokenCfg.TwoFactorExpireMinutes
	if minutes <= 0 {
		minutes = 10
	}
	subject := i18n.T(locale, "email.two_factor.subject")
	body := i18n.Sprintf(locale, "email.two_factor.body", code, minutes)
	return s.deliver(ctx, user.Email, subject, body)
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNumber string
	Status      string
	Amount      models.Money
	FullName    string
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(ctx context.Context, toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, i18n.NormalizeLocale(locale))
	return s.deliver(ctx, toEmail, subject, body)
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	statusKey := "order.status." + status
	statusLabel := i18n.T(locale, statusKey)
	if statusLabel == statusKey {
		statusLabel = input.Status
	}
	amount := input.Amount.FormatTR()
	subject := i18n.Sprintf(locale, "email.order_status.subject", input.OrderNumber, statusLabel)
	name := strings.TrimSpace(input.FullName)
	switch status {
	case constants.OrderStatusShipped:
		return subject, i18n.Sprintf(locale, "email.order_status.body_shipped", name, input.OrderNumber, statusLabel, amount)
	case constants.OrderStatusCancelled:
		return subject, i18n.Sprintf(locale, "email.order_status.body_cancelled", name, input.OrderNumber, statusLabel, amount)
	default:
		return subject, i18n.Sprintf(locale, "email.order_status.body", name, input.OrderNumber, statusLabel, amount)
	}
}

func (s *EmailService) buildFrontendLink(path, token string) string {
	base := ""
	if s.cfg != nil {
		base = strings.TrimRight(strings.TrimSpace(s.cfg.FrontendURL), "/")
	}
	return fmt.Sprintf("%s/%s/%s", base, path, token)
}

func (s *EmailService) deliver(ctx context.Context, toEmail, subject, body string) error {
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}
	return s.deliverFn(ctx, toEmail, subject, body)
}

func (s *EmailService) sendSMTP(ctx context.Context, toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	conn, err := dialSMTP(ctx, addr, s.cfg.Host, s.cfg.UseSSL)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if s.cfg.UseTLS && !s.cfg.UseSSL {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return normalizeEmailSendError(sendSMTPData(client, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func dialSMTP(ctx context.Context, addr, host string, useSSL bool) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 15 * time.Second}
	if useSSL {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: host}}
		return tlsDialer.DialContext(ctx, "tcp", addr)
	}
	return dialer.DialContext(ctx, "tcp", addr)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	return (&mail.Address{Name: name, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	for _, keyword := range []string{
		"no such recipient",
		"no such user",
		"recipient address rejected",
		"user unknown",
		"unknown mailbox",
		"mailbox unavailable",
	} {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return strings.HasPrefix(message, "550") && strings.Contains(message, "recipient")
}

func resolveUserLocale(user *models.User, locale string) string {
	if strings.TrimSpace(locale) != "" {
		return i18n.NormalizeLocale(locale)
	}
	if user != nil && strings.TrimSpace(user.Locale) != "" {
		return i18n.NormalizeLocale(user.Locale)
	}
	return i18n.DefaultLocale
}

func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if name := user.FullName(); name != "" {
		return name
	}
	return user.Email
}

func resolveHours(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
