package repository

import (
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
)

func TestAuthTokenInvalidateActiveOnlyTouchesPurpose(t *testing.T) {
	db := openTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := seedUser(t, db, "token@example.com")

	for _, token := range []*models.AuthToken{
		{UserID: user.ID, Purpose: constants.AuthTokenPurposeEmailVerify, Token: "a"},
		{UserID: user.ID, Purpose: constants.AuthTokenPurposeEmailVerify, Token: "b"},
		{UserID: user.ID, Purpose: constants.AuthTokenPurposePasswordReset, Token: "c"},
	} {
		if err := repo.Create(token); err != nil {
			t.Fatalf("create token failed: %v", err)
		}
	}

	if err := repo.InvalidateActive(user.ID, constants.AuthTokenPurposeEmailVerify); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	verifyActive, _ := repo.CountActive(user.ID, constants.AuthTokenPurposeEmailVerify)
	resetActive, _ := repo.CountActive(user.ID, constants.AuthTokenPurposePasswordReset)
	if verifyActive != 0 || resetActive != 1 {
		t.Fatalf("unexpected active counts verify=%d reset=%d", verifyActive, resetActive)
	}
}

func TestAuthTokenMarkUsedOnce(t *testing.T) {
	db := openTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := seedUser(t, db, "once@example.com")
	token := &models.AuthToken{UserID: user.ID, Purpose: constants.AuthTokenPurposeTwoFactor, Token: "123456"}
	if err := repo.Create(token); err != nil {
		t.Fatalf("create token failed: %v", err)
	}

	first, err := repo.MarkUsed(token.ID)
	if err != nil || !first {
		t.Fatalf("first mark should succeed, ok=%v err=%v", first, err)
	}
	second, err := repo.MarkUsed(token.ID)
	if err != nil || second {
		t.Fatalf("second mark should be a no-op, ok=%v err=%v", second, err)
	}
	found, err := repo.GetActiveByToken(constants.AuthTokenPurposeTwoFactor, "123456")
	if err != nil || found != nil {
		t.Fatalf("used token must not be returned, got %+v err=%v", found, err)
	}
}

func TestAuthTokenLatestMatchPreloadsUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := seedUser(t, db, "latest@example.com")
	older := &models.AuthToken{UserID: user.ID, Purpose: constants.AuthTokenPurposeTwoFactor, Token: "111111"}
	newer := &models.AuthToken{UserID: user.ID, Purpose: constants.AuthTokenPurposeTwoFactor, Token: "111111"}
	if err := repo.Create(older); err != nil {
		t.Fatalf("create older failed: %v", err)
	}
	if err := repo.Create(newer); err != nil {
		t.Fatalf("create newer failed: %v", err)
	}

	got, err := repo.GetLatestActiveByUserAndToken(user.ID, constants.AuthTokenPurposeTwoFactor, "111111")
	if err != nil || got == nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != newer.ID {
		t.Fatalf("want newest token %d got %d", newer.ID, got.ID)
	}
	if got.User.Email != user.Email {
		t.Fatalf("user should be preloaded, got %q", got.User.Email)
	}
}

func TestAuthTokenRecordFailedAttempt(t *testing.T) {
	db := openTestDB(t)
	repo := NewAuthTokenRepository(db)
	user := seedUser(t, db, "attempts@example.com")
	code := &models.AuthToken{UserID: user.ID, Purpose: constants.AuthTokenPurposeTwoFactor, Token: "654321"}
	reset := &models.AuthToken{UserID: user.ID, Purpose: constants.AuthTokenPurposePasswordReset, Token: "r"}
	for _, token := range []*models.AuthToken{code, reset} {
		if err := repo.Create(token); err != nil {
			t.Fatalf("create token failed: %v", err)
		}
	}

	exhausted, err := repo.RecordFailedAttempt(user.ID, constants.AuthTokenPurposeTwoFactor, 2)
	if err != nil || exhausted {
		t.Fatalf("first attempt should not exhaust: exhausted=%v err=%v", exhausted, err)
	}
	exhausted, err = repo.RecordFailedAttempt(user.ID, constants.AuthTokenPurposeTwoFactor, 2)
	if err != nil || !exhausted {
		t.Fatalf("second attempt should exhaust: exhausted=%v err=%v", exhausted, err)
	}

	var stored models.AuthToken
	if err := db.First(&stored, code.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Attempts != 2 || !stored.IsUsed {
		t.Fatalf("unexpected code state: attempts=%d used=%v", stored.Attempts, stored.IsUsed)
	}
	if active, _ := repo.CountActive(user.ID, constants.AuthTokenPurposePasswordReset); active != 1 {
		t.Fatalf("other purposes must be untouched, active=%d", active)
	}
}
