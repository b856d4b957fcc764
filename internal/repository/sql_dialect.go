package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符
func escapeLike(raw string) string {
	return likeEscaper.Replace(raw)
}

// caseInsensitiveLike postgres 的 LIKE 区分大小写，需改用 ILIKE
func caseInsensitiveLike(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "LIKE"
	}
	switch strings.ToLower(db.Dialector.Name()) {
	case "postgres", "postgresql":
		return "ILIKE"
	}
	return "LIKE"
}

// keywordCondition 生成 "(a LIKE ? ESCAPE '\' OR b LIKE ? ...)" 及对应参数
func keywordCondition(operator, keyword string, columns []string) (string, []interface{}) {
	pattern := "%" + escapeLike(keyword) + "%"
	var sb strings.Builder
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		if len(args) > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString(column + " " + operator + ` ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	if len(args) == 0 {
		return "", nil
	}
	return "(" + sb.String() + ")", args
}

// matchKeyword 模糊匹配任一列的 scope，关键字为空时不追加条件
func matchKeyword(keyword string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return db
		}
		condition, args := keywordCondition(caseInsensitiveLike(db), keyword, columns)
		if condition == "" {
			return db
		}
		return db.Where(condition, args...)
	}
}
