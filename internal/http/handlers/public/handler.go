package public

import "github.com/kasuwa-shop/internal/provider"

// Handler 顾客侧接口：目录浏览、账户、地址与订单
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
