package public

import (
	"errors"

	"github.com/Selinclb/eticaretsitesi/internal/cache"
	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSetting 获取站点设置（联系方式 / 社交媒体 / 政策文本）
func (h *Handler) GetSetting(c *gin.Context) {
	key, ok := handlershared.ResolveSettingKey(c.Param("name"))
	if !ok {
		respondError(c, response.CodeNotFound, "error.setting_not_found", nil)
		return
	}

	cacheKey := handlershared.SettingCacheKey(key)
	var cached models.JSON
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	value, err := h.SettingService.Get(key)
	if err != nil {
		if errors.Is(err, service.ErrSettingKeyInvalid) {
			respondError(c, response.CodeNotFound, "error.setting_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), cacheKey, value, handlershared.SettingCacheTTL)
	response.Success(c, value)
}
