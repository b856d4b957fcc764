package public

import (
	handlershared "github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

var accountErrorRules = handlershared.ConcatMappedErrors(
	handlershared.AccountErrorRules,
	handlershared.NotFoundErrorRules,
)

var addressErrorRules = handlershared.ConcatMappedErrors(
	handlershared.AddressErrorRules,
	handlershared.NotFoundErrorRules,
)

var orderErrorRules = handlershared.ConcatMappedErrors(
	handlershared.OrderErrorRules,
	handlershared.NotFoundErrorRules,
)

var catalogErrorRules = handlershared.ConcatMappedErrors(
	handlershared.CatalogErrorRules,
	handlershared.NotFoundErrorRules,
)

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}
