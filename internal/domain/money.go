package domain

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxMoney is the largest amount a NUMERIC(10, 2) column holds.
const MaxMoney Money = 99_999_999_99

// Money is an amount in cents. It serializes as a decimal number with two
// fraction digits both on the wire and in NUMERIC columns.
type Money int64

// ParseMoney parses a decimal string such as "100", "99.9" or "1250.00".
// More than two fraction digits is rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	// a single leading minus was already consumed
	if strings.ContainsAny(whole, "+-") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	if strings.ContainsAny(frac, "+-") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	m := Money(units*100 + cents)
	if neg {
		m = -m
	}
	return m, nil
}

// MoneyFromFloat converts a float amount, rounding to the nearest cent.
func MoneyFromFloat(f float64) Money {
	if f < 0 {
		return Money(f*100 - 0.5)
	}
	return Money(f*100 + 0.5)
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 { return int64(m) }

// Times multiplies the amount by a whole quantity.
func (m Money) Times(n int64) Money { return Money(int64(m) * n) }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Value stores the amount as a decimal string for NUMERIC(10,2) columns.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = MoneyFromFloat(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
}

func (m *Money) scanString(s string) error {
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
