package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// GetSummaryInput represents an inclusive date window.
type GetSummaryInput struct {
	From time.Time
	To   time.Time
}

// GetSummaryOutput represents the output of the summary computation.
type GetSummaryOutput struct {
	Summary *entity.FinancialSummary
}

// GetSummaryUseCase computes income, expense and balance for a window.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository, transactor adapter.Transactor) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// Execute runs both aggregations and the count in a single read-only transaction.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	from := entity.DateOf(input.From)
	to := entity.DateOf(input.To)

	var summary *entity.FinancialSummary
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		income, err := uc.transactionRepo.SumAmountByKindAndDateRange(ctx, entity.TransactionKindIncome, from, to)
		if err != nil {
			return fmt.Errorf("failed to sum income: %w", err)
		}

		expense, err := uc.transactionRepo.SumAmountByKindAndDateRange(ctx, entity.TransactionKindExpense, from, to)
		if err != nil {
			return fmt.Errorf("failed to sum expenses: %w", err)
		}

		count, err := uc.transactionRepo.CountByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to count transactions: %w", err)
		}

		summary = entity.NewFinancialSummary(income, expense, count, from, to)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		Summary: summary,
	}, nil
}
