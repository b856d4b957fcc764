package admin

import (
	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var catalogErrorRules = handlershared.ConcatMappedErrors(
	handlershared.CatalogErrorRules,
	handlershared.NotFoundErrorRules,
)

var orderErrorRules = handlershared.ConcatMappedErrors(
	handlershared.OrderErrorRules,
	handlershared.NotFoundErrorRules,
)

var userErrorRules = handlershared.ConcatMappedErrors(
	handlershared.AccountErrorRules,
	handlershared.NotFoundErrorRules,
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}

func parseParamID(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseParamID(c, name)
}

func getStaffID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}
