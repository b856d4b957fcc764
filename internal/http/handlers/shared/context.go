package shared

import (
	"github.com/kasuwa-shop/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, err := cast.ToUintE(value)
	if err != nil {
		if _, isNumber := value.(int); isNumber {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
	if id == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return id, true
}

// GetUserID 读取当前登录用户 ID。
func GetUserID(c *gin.Context) (uint, bool) {
	return GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// ParseParamID 解析路径参数中的正整数 ID，非法时返回 400。
func ParseParamID(c *gin.Context, name string) (uint, bool) {
	id, err := cast.ToUintE(c.Param(name))
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return id, true
}
