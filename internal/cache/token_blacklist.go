package cache

import (
	"context"
	"strings"
	"time"
)

func refreshBlacklistKey(jti string) string {
	return "auth:refresh:blacklist:" + strings.TrimSpace(jti)
}

// BlacklistRefreshToken 将刷新令牌 jti 加入黑名单，返回是否为首次加入
// 缓存未启用时返回 (false, nil)，由调用方回退到数据库
func BlacklistRefreshToken(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return SetNX(ctx, refreshBlacklistKey(jti), 1, ttl)
}

// IsRefreshTokenBlacklisted 判断刷新令牌是否已在黑名单
func IsRefreshTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	return Exists(ctx, refreshBlacklistKey(jti))
}
