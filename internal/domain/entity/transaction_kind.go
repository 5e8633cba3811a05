// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// TransactionKind classifies both categories and transactions as income or expense.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "RECEITA"
	TransactionKindExpense TransactionKind = "DESPESA"
)

// DateLayout is the calendar date format used on the wire and in query strings.
const DateLayout = "2006-01-02"

// ParseTransactionKind parses the exact wire value of a kind.
func ParseTransactionKind(value string) (TransactionKind, error) {
	kind := TransactionKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid transaction kind %q: accepted values are [%s, %s]",
			value, TransactionKindIncome, TransactionKindExpense)
	}
	return kind, nil
}

// IsValid reports whether the kind is one of the known values.
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// String implements fmt.Stringer.
func (k TransactionKind) String() string {
	return string(k)
}

// UnmarshalJSON rejects unknown kinds at decode time.
func (k *TransactionKind) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid transaction kind: %w", err)
	}
	if raw == nil {
		*k = ""
		return nil
	}
	kind, err := ParseTransactionKind(*raw)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// DateOf truncates t to its calendar date, expressed at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current server-local calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}
