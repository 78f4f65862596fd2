package public

import (
	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func normalizePagination(c *gin.Context) (int, int) {
	return handlershared.ReadPagination(c)
}
