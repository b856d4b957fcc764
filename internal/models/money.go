package models

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// ErrInvalidMoney 金额格式非法
var ErrInvalidMoney = errors.New("invalid money amount")

// Money 金额（两位小数，JSON 输出为字符串）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// ParseMoney 解析非负金额字符串（如查询参数中的价格区间）
func ParseMoney(raw string) (Money, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || amount.IsNegative() {
		return Money{}, ErrInvalidMoney
	}
	return NewMoneyFromDecimal(amount), nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON 接受字符串或数字，null 视为 0
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(b); err != nil {
		return err
	}
	m.Decimal = amount.Round(moneyScale)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(moneyScale).Value()
}

func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(moneyScale)
	return nil
}

func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}
