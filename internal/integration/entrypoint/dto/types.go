// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/domain/entity"
)

// Money renders a decimal as a bare JSON number with exactly two fractional digits.
type Money decimal.Decimal

// NewMoney converts a decimal into Money.
func NewMoney(d decimal.Decimal) Money {
	return Money(d)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(entity.MoneyScale)), nil
}

// Date is a calendar date encoded as "YYYY-MM-DD". The zero Date encodes as null.
type Date struct {
	time.Time
}

// NewDate converts t into a Date, dropping the time of day.
func NewDate(t time.Time) Date {
	return Date{Time: entity.DateOf(t)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(entity.DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	parsed, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected format %s", raw, entity.DateLayout)
	}
	*d = Date{Time: parsed}
	return nil
}
