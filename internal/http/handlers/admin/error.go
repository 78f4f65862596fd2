package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

func normalizePagination(c *gin.Context) (int, int) {
	return handlershared.ReadPagination(c)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	return handlershared.ParseTimeNullable(raw)
}

func parseIDParam(c *gin.Context, invalidKey string) (uint, bool) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return id, true
}

func parseQueryUint(raw string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
