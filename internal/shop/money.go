package shop

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// MoneyExponent is the number of minor-unit digits kept for every amount.
const MoneyExponent = 2

// Money is an amount in minor units (hundredths). It serialises as a plain
// JSON number with two decimals, e.g. 75.00.
type Money int64

// ParseMoney converts a decimal string like "10.5" into Money, rounding to
// two decimals.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidInput, s)
	}
	return MoneyFromDecimal(d), nil
}

// MustMoney is ParseMoney for constants and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(MoneyExponent).Shift(MoneyExponent).IntPart())
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyExponent)
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyExponent)
}

// Times multiplies a unit amount by a quantity.
func (m Money) Times(qty int64) Money {
	return m * Money(qty)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers (including float artefacts like
// 30.000000000000004), quoted numbers and null.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || len(data) == 0 {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("decode amount: %w", err)
		}
		data = []byte(s)
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("decode amount %s: %w", data, err)
	}
	*m = MoneyFromDecimal(d)
	return nil
}
