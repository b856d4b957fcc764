package router

import (
	"strings"
	"sync"

	"github.com/kasuwa-shop/internal/constants"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators 注册自定义参数校验规则
//   - ng_state: 尼日利亚州代码（大小写不敏感）
//   - payment_method: FIAT / CRYPTO（大小写不敏感）
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("ng_state", validateNigerianState)
		_ = engine.RegisterValidation("payment_method", validatePaymentMethod)
	})
}

func validateNigerianState(fl validator.FieldLevel) bool {
	return constants.IsNigerianState(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
	case constants.PaymentMethodFiat, constants.PaymentMethodCrypto:
		return true
	default:
		return false
	}
}
