package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// ListTransactionsByPeriodInput represents an inclusive date window.
// An inverted window is not an error; it simply matches nothing.
type ListTransactionsByPeriodInput struct {
	From time.Time
	To   time.Time
}

// ListTransactionsByPeriodUseCase handles listing transactions dated within a window.
type ListTransactionsByPeriodUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
}

// NewListTransactionsByPeriodUseCase creates a new ListTransactionsByPeriodUseCase instance.
func NewListTransactionsByPeriodUseCase(transactionRepo adapter.TransactionRepository, transactor adapter.Transactor) *ListTransactionsByPeriodUseCase {
	return &ListTransactionsByPeriodUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// Execute performs the listing.
func (uc *ListTransactionsByPeriodUseCase) Execute(ctx context.Context, input ListTransactionsByPeriodInput) (*ListTransactionsOutput, error) {
	var transactions []*entity.Transaction
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		transactions, err = uc.transactionRepo.FindByDateRange(ctx, input.From, input.To)
		if err != nil {
			return fmt.Errorf("failed to list transactions by period: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
	}, nil
}
