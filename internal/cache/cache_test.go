package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func useMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	UseClient(client, "test")
	t.Cleanup(func() {
		_ = Close()
		srv.Close()
	})
	return srv
}

func TestDisabledCacheIsNoop(t *testing.T) {
	UseClient(nil, "")
	ctx := context.Background()

	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be nil, got %v", err)
	}
	var dest map[string]int
	hit, err := GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache must miss, hit=%v err=%v", hit, err)
	}
	added, err := BlacklistRefreshToken(ctx, "jti", time.Minute)
	if err != nil || added {
		t.Fatalf("disabled blacklist should report not added, added=%v err=%v", added, err)
	}
}

func TestUserAuthStateRoundTrip(t *testing.T) {
	srv := useMiniRedis(t)
	ctx := context.Background()
	now := time.Now()
	user := &models.User{ID: 7, Status: "active", IsActive: true, TokenVersion: 3, TokenInvalidBefore: &now}

	if err := SetUserAuthState(ctx, BuildUserAuthState(user)); err != nil {
		t.Fatalf("set state failed: %v", err)
	}
	if !srv.Exists("test:auth:user:7") {
		t.Fatalf("state should be stored under the prefixed key")
	}

	state, hit, err := GetUserAuthState(ctx, 7)
	if err != nil || !hit {
		t.Fatalf("state should hit, hit=%v err=%v", hit, err)
	}
	if state.TokenVersion != 3 || state.TokenInvalidBefore != now.Unix() || !state.IsActive {
		t.Fatalf("unexpected state: %+v", state)
	}

	if err := DelUserAuthState(ctx, 7); err != nil {
		t.Fatalf("delete state failed: %v", err)
	}
	if _, hit, _ := GetUserAuthState(ctx, 7); hit {
		t.Fatalf("state should be gone after delete")
	}
}

func TestRefreshBlacklist(t *testing.T) {
	srv := useMiniRedis(t)
	ctx := context.Background()

	first, err := BlacklistRefreshToken(ctx, "abc", time.Hour)
	if err != nil || !first {
		t.Fatalf("first blacklist should succeed, first=%v err=%v", first, err)
	}
	second, err := BlacklistRefreshToken(ctx, "abc", time.Hour)
	if err != nil || second {
		t.Fatalf("second blacklist should report existing entry, second=%v err=%v", second, err)
	}
	listed, err := IsRefreshTokenBlacklisted(ctx, "abc")
	if err != nil || !listed {
		t.Fatalf("jti should be blacklisted, listed=%v err=%v", listed, err)
	}

	srv.FastForward(2 * time.Hour)
	listed, err = IsRefreshTokenBlacklisted(ctx, "abc")
	if err != nil || listed {
		t.Fatalf("blacklist entry should expire with the token, listed=%v err=%v", listed, err)
	}
}
