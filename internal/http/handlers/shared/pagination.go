package shared

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 页码至少为 1，每页条数落在 [1, 100]，非法值取默认 20
func NormalizePagination(page, pageSize int) (int, int) {
	page = max(page, 1)
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}

// QueryPagination 解析 page 与 page_size，无法解析的值按 0 处理
func QueryPagination(c *gin.Context) (int, int) {
	return NormalizePagination(cast.ToInt(c.Query("page")), cast.ToInt(c.Query("page_size")))
}
