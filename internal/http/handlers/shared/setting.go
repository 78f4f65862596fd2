package shared

import (
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
)

// SettingCacheTTL 公开设置缓存时长
const SettingCacheTTL = 60 * time.Second

var settingRouteKeys = map[string]string{
	"contact":      constants.SettingKeyContact,
	"social-media": constants.SettingKeySocialMedia,
	"policies":     constants.SettingKeyPolicies,
}

// ResolveSettingKey 将路由中的设置名（social-media）转换为存储键（social_media）
func ResolveSettingKey(name string) (string, bool) {
	key, ok := settingRouteKeys[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// SettingCacheKey 公开设置缓存键
func SettingCacheKey(key string) string {
	return "public:setting:" + key
}
