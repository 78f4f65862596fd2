package admin

import (
	"github.com/Selinclb/eticaretsitesi/internal/cache"
	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateSetting 整体替换站点设置，未知字段会被丢弃
func (h *Handler) UpdateSetting(c *gin.Context) {
	key, ok := handlershared.ResolveSettingKey(c.Param("name"))
	if !ok {
		respondError(c, response.CodeNotFound, "error.setting_not_found", nil)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	value, err := h.SettingService.Update(key, req)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{Target: service.ErrSettingKeyInvalid, Code: response.CodeNotFound, Key: "error.setting_not_found"},
			{Target: service.ErrSettingValueInvalid, Code: response.CodeBadRequest, Key: "error.setting_value_invalid"},
		}, response.CodeInternal, "error.settings_save_failed")
		return
	}

	if err := cache.Del(c.Request.Context(), handlershared.SettingCacheKey(key)); err != nil {
		requestLog(c).Warnw("setting_cache_invalidate_failed", "key", key, "error", err)
	}
	response.Success(c, value)
}
