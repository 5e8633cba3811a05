package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for monetary values.
const MoneyScale = 2

// FinancialSummary aggregates the transactions dated inside [From, To].
type FinancialSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int64
	From             time.Time
	To               time.Time
}

// NewFinancialSummary computes the balance from the two sums at money scale.
func NewFinancialSummary(income, expense decimal.Decimal, count int64, from, to time.Time) *FinancialSummary {
	income = income.Round(MoneyScale)
	expense = expense.Round(MoneyScale)

	return &FinancialSummary{
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          income.Sub(expense),
		TransactionCount: count,
		From:             from,
		To:               to,
	}
}
