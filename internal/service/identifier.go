package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"

	"gorm.io/gorm"
)

// IdentifierGenerator 生成指定长度的大写字母数字标识
type IdentifierGenerator func(length int) (string, error)

var identifierAlphabetSize = big.NewInt(int64(len(constants.IdentifierAlphabet)))

// randomIdentifier 使用 crypto/rand 生成 [A-Z0-9]{length}
func randomIdentifier(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("identifier length must be positive, got %d", length)
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, identifierAlphabetSize)
		if err != nil {
			return "", err
		}
		b.WriteByte(constants.IdentifierAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// IsValidIdentifier 判断是否为指定长度的大写字母数字标识
func IsValidIdentifier(value string, length int) bool {
	if len(value) != length {
		return false
	}
	for i := 0; i < len(value); i++ {
		if strings.IndexByte(constants.IdentifierAlphabet, value[i]) < 0 {
			return false
		}
	}
	return true
}

// identifierAllocator 带唯一约束兜底的有界随机标识分配器
type identifierAllocator struct {
	name        string
	length      int
	maxAttempts int
	generate    IdentifierGenerator
	exists      func(db *gorm.DB, value string) (bool, error)
	exhausted   error
}

func (a *identifierAllocator) attempts() int {
	if a.maxAttempts <= 0 {
		return 1
	}
	return a.maxAttempts
}

func (a *identifierAllocator) next() (string, error) {
	generate := a.generate
	if generate == nil {
		generate = randomIdentifier
	}
	return generate(a.length)
}

// allocate 生成一个当前未被占用的标识（仅预检查，不保证插入时不冲突）
func (a *identifierAllocator) allocate(db *gorm.DB) (string, error) {
	for attempt := 1; attempt <= a.attempts(); attempt++ {
		value, err := a.next()
		if err != nil {
			return "", err
		}
		taken, err := a.exists(db, value)
		if err != nil {
			return "", err
		}
		if !taken {
			return value, nil
		}
		logger.Warnw(a.name+"_conflict_retry",
			"attempt", attempt,
			"stage", "precheck",
		)
	}
	return "", a.exhaust()
}

// reserve 在 tx 内分配标识并执行插入；插入撞上唯一约束时回滚到保存点并重新生成
func (a *identifierAllocator) reserve(tx *gorm.DB, insert func(sp *gorm.DB, value string) error) (string, error) {
	for attempt := 1; attempt <= a.attempts(); attempt++ {
		value, err := a.next()
		if err != nil {
			return "", err
		}
		taken, err := a.exists(tx, value)
		if err != nil {
			return "", err
		}
		if taken {
			logger.Warnw(a.name+"_conflict_retry",
				"attempt", attempt,
				"stage", "precheck",
			)
			continue
		}
		err = tx.Transaction(func(sp *gorm.DB) error {
			return insert(sp, value)
		})
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
		logger.Warnw(a.name+"_conflict_retry",
			"attempt", attempt,
			"stage", "insert",
		)
	}
	return "", a.exhaust()
}

func (a *identifierAllocator) exhaust() error {
	logger.Errorw(a.name+"_exhausted",
		"max_attempts", a.attempts(),
		"length", a.length,
	)
	return a.exhausted
}
