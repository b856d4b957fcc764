package admin

import "github.com/kasuwa-shop/internal/provider"

// Handler 员工后台接口，路由层已完成 is_staff 与策略校验
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
