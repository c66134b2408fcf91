package models

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits of a numeric(10,2) column.
const MoneyScale = 2

// Money is an exact amount that always renders with two fractional digits,
// so 1500 is written as "1500.00".
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MustMoney parses a literal amount and panics when it is malformed.
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

func (m Money) String() string {
	return m.StringFixed(MoneyScale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(value any) error {
	return m.Decimal.Scan(value)
}
