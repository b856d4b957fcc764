package service

import (
	"strings"

	"github.com/gosimple/slug"
)

// resolveSlug 优先使用显式 slug，否则由名称派生；结果统一为小写连字符形式
func resolveSlug(explicit, name string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = strings.TrimSpace(name)
	}
	resolved := slug.Make(source)
	if resolved == "" {
		return "", ErrInvalidSlug
	}
	return resolved, nil
}

// SlugFor 由名称派生 slug（与创建商品/分类时的规则一致）
func SlugFor(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
