package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
)

const testPassword = "Guclu1sifre"

func TestRegisterRequiresVerificationBeforeLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, RegisterInput{
		Email:           "  Ayse@Example.com ",
		Password:        testPassword,
		PasswordConfirm: testPassword,
		FirstName:       "Ayşe",
		LastName:        "Yılmaz",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ayse@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.IsActive || user.IsEmailVerified {
		t.Fatalf("new account must be inactive")
	}
	if f.mailer.lastToken("verify") == "" {
		t.Fatalf("verification email not sent")
	}

	result, err := f.auth.Login(ctx, "ayse@example.com", testPassword, "")
	if !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
	if result == nil || result.User == nil {
		t.Fatalf("login result should carry the user for logging")
	}

	verified, err := f.auth.VerifyEmail(ctx, f.mailer.lastToken("verify"))
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Session == nil || verified.Session.AccessToken == "" {
		t.Fatalf("verification should sign the user in")
	}

	login, err := f.auth.Login(ctx, "AYSE@example.com", testPassword, "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.RequiresTwoFactor || login.Session == nil {
		t.Fatalf("expected a session without two factor")
	}
	stored, err := f.users.GetByID(user.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if !stored.IsActive || !stored.IsEmailVerified || stored.LastLoginAt == nil {
		t.Fatalf("unexpected stored user state: %+v", stored)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	base := RegisterInput{
		Email:           "mehmet@example.com",
		Password:        testPassword,
		PasswordConfirm: testPassword,
		FirstName:       "Mehmet",
		LastName:        "Kaya",
	}

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
		want   error
	}{
		{name: "invalid_email", mutate: func(in *RegisterInput) { in.Email = "mehmet" }, want: ErrInvalidEmail},
		{name: "missing_name", mutate: func(in *RegisterInput) { in.FirstName = " " }, want: ErrNameRequired},
		{name: "confirm_mismatch", mutate: func(in *RegisterInput) { in.PasswordConfirm = "Baska1sifre" }, want: ErrPasswordMismatch},
		{name: "too_short", mutate: func(in *RegisterInput) { in.Password, in.PasswordConfirm = "Ab1", "Ab1" }, want: ErrWeakPassword},
		{name: "numeric_only", mutate: func(in *RegisterInput) { in.Password, in.PasswordConfirm = "12345678", "12345678" }, want: ErrWeakPassword},
	}
	for _, tt := range tests {
		input := base
		tt.mutate(&input)
		if _, err := f.auth.Register(ctx, input); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	if _, err := f.auth.Register(ctx, base); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	duplicate := base
	duplicate.Email = "MEHMET@example.com"
	if _, err := f.auth.Register(ctx, duplicate); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginInvalidCredentialsIsUniform(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "ayse@example.com", testPassword)
	ctx := context.Background()

	if _, err := f.auth.Login(ctx, "ayse@example.com", "Yanlis1sifre", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "kimse@example.com", testPassword, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ayse@example.com", testPassword)
	if err := f.users.UpdateFields(user.ID, map[string]interface{}{"status": constants.UserStatusDisabled}); err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, err := f.auth.Login(context.Background(), "ayse@example.com", testPassword, ""); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestLoginWithTwoFactor(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ayse@example.com", testPassword)
	ctx := context.Background()

	if _, err := f.auth.SetTwoFactor(user.ID, true); err != nil {
		t.Fatalf("enable two factor failed: %v", err)
	}
	result, err := f.auth.Login(ctx, "ayse@example.com", testPassword, "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.RequiresTwoFactor || result.Session != nil {
		t.Fatalf("two factor login must not issue a session")
	}
	code := f.mailer.lastToken("two_factor")
	if code == "" {
		t.Fatalf("two factor code not sent")
	}

	if _, err := f.auth.VerifyTwoFactor(ctx, "kimse@example.com", code); !errors.Is(err, ErrTwoFactorCodeInvalid) {
		t.Fatalf("unknown email expected ErrTwoFactorCodeInvalid, got %v", err)
	}
	verified, err := f.auth.VerifyTwoFactor(ctx, "ayse@example.com", code)
	if err != nil {
		t.Fatalf("verify two factor failed: %v", err)
	}
	if verified.Session == nil {
		t.Fatalf("expected session after two factor")
	}
	if _, err := f.auth.VerifyTwoFactor(ctx, "ayse@example.com", code); !errors.Is(err, ErrTwoFactorCodeInvalid) {
		t.Fatalf("code reuse expected ErrTwoFactorCodeInvalid, got %v", err)
	}
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, RegisterInput{
		Email: "ayse@example.com", Password: testPassword, PasswordConfirm: testPassword, FirstName: "Ayşe", LastName: "Yılmaz",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	first := f.mailer.lastToken("verify")
	if err := f.auth.ResendVerification(ctx, "ayse@example.com", ""); err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	second := f.mailer.lastToken("verify")
	if first == second {
		t.Fatalf("resend should issue a new token")
	}
	if _, err := f.auth.VerifyEmail(ctx, first); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("old verification token should be dead, got %v", err)
	}
	if _, err := f.auth.VerifyEmail(ctx, second); err != nil {
		t.Fatalf("verify with new token failed: %v", err)
	}
	if err := f.auth.ResendVerification(ctx, "ayse@example.com", ""); !errors.Is(err, ErrEmailAlreadyVerified) {
		t.Fatalf("expected ErrEmailAlreadyVerified, got %v", err)
	}
	if err := f.auth.ResendVerification(ctx, "kimse@example.com", ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ayse@example.com", testPassword)
	ctx := context.Background()

	login, err := f.auth.Login(ctx, "ayse@example.com", testPassword, "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := f.auth.RequestPasswordReset(ctx, "kimse@example.com", ""); err != nil {
		t.Fatalf("unknown email should succeed silently, got %v", err)
	}
	if f.mailer.lastToken("reset") != "" {
		t.Fatalf("no reset mail expected for unknown email")
	}
	if err := f.auth.RequestPasswordReset(ctx, "ayse@example.com", ""); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	token := f.mailer.lastToken("reset")

	if err := f.auth.ConfirmPasswordReset(ctx, token, "Yeni1sifre", "Baska1sifre"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := f.auth.ConfirmPasswordReset(ctx, token, "Yeni1sifre", "Yeni1sifre"); err != nil {
		t.Fatalf("confirm reset failed: %v", err)
	}
	if err := f.auth.ConfirmPasswordReset(ctx, token, "Yeni2sifre", "Yeni2sifre"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("reset token reuse expected ErrTokenNotFound, got %v", err)
	}

	if _, err := f.auth.Login(ctx, "ayse@example.com", testPassword, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must fail, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "ayse@example.com", "Yeni1sifre", ""); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
	if _, err := f.auth.RefreshSession(ctx, login.Session.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("sessions before reset must be invalid, got %v", err)
	}
	stored, _ := f.users.GetByID(user.ID)
	if stored.TokenVersion == 0 || stored.TokenInvalidBefore == nil {
		t.Fatalf("token version should be bumped: %+v", stored)
	}
}

func TestPasswordResetHidesSendFailure(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t, "ayse@example.com", testPassword)

	f.mailer.err = errors.New("smtp down")
	if err := f.auth.RequestPasswordReset(ctx, "ayse@example.com", ""); err != nil {
		t.Fatalf("send failure must not surface, got %v", err)
	}
	if err := f.auth.RequestPasswordReset(ctx, "kimse@example.com", ""); err != nil {
		t.Fatalf("unknown email must not surface, got %v", err)
	}
	if err := f.auth.RequestPasswordReset(ctx, "gecersiz", ""); err == nil {
		t.Fatalf("malformed email should still be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ayse@example.com", testPassword)
	ctx := context.Background()

	if _, err := f.auth.ChangePassword(ctx, user.ID, "Yanlis1sifre", "Yeni1sifre"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := f.auth.ChangePassword(ctx, user.ID, testPassword, "kisa"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	pair, err := f.auth.ChangePassword(ctx, user.ID, testPassword, "Yeni1sifre")
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	claims, err := f.sessions.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.TokenVersion != 1 {
		t.Fatalf("new session should carry bumped version, got %d", claims.TokenVersion)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ayse@example.com", testPassword)

	city := " İzmir "
	empty := ""
	updated, err := f.auth.UpdateProfile(user.ID, ProfileUpdateInput{City: &city})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.City != "İzmir" || updated.FirstName != "Ayşe" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if _, err := f.auth.UpdateProfile(user.ID, ProfileUpdateInput{FirstName: &empty}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	long := "123456789012345678"
	if _, err := f.auth.UpdateProfile(user.ID, ProfileUpdateInput{Phone: &long}); !errors.Is(err, ErrProfileFieldInvalid) {
		t.Fatalf("expected ErrProfileFieldInvalid, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ayse@example.com", testPassword)
	ctx := context.Background()

	if err := f.auth.DeleteAccount(ctx, user.ID, "Yanlis1sifre"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := f.auth.DeleteAccount(ctx, user.ID, testPassword); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}
	if _, err := f.auth.GetProfile(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}
