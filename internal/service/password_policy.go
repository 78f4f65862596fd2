package service

import (
	"strings"
	"unicode"

	"github.com/Selinclb/eticaretsitesi/internal/config"
)

// PasswordPolicyError 密码策略校验失败，携带 i18n key 与参数
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e PasswordPolicyError) Error() string {
	return e.key
}

// Is 所有密码策略错误都视为 ErrWeakPassword
func (e PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 返回 i18n key
func (e PasswordPolicyError) Key() string {
	return e.key
}

// Args 返回文案参数
func (e PasswordPolicyError) Args() []interface{} {
	return e.args
}

// validatePassword 按密码策略校验；email 用于拒绝与账号过于相似的密码，可为空
func validatePassword(policy config.PasswordPolicyConfig, password, email string) error {
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RejectNumeric && hasNumber && !hasUpper && !hasLower && !hasSpecial {
		return PasswordPolicyError{key: "error.password_numeric_only"}
	}
	if policy.RequireUpper && !hasUpper {
		return PasswordPolicyError{key: "error.password_require_upper"}
	}
	if policy.RequireLower && !hasLower {
		return PasswordPolicyError{key: "error.password_require_lower"}
	}
	if policy.RequireNumber && !hasNumber {
		return PasswordPolicyError{key: "error.password_require_number"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return PasswordPolicyError{key: "error.password_require_special"}
	}
	if policy.RejectEmail && email != "" {
		local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
		if len([]rune(local)) >= 3 && strings.Contains(strings.ToLower(password), local) {
			return PasswordPolicyError{key: "error.password_too_similar"}
		}
	}
	return nil
}
