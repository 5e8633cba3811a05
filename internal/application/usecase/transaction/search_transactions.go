package transaction

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// SearchTransactionsInput represents a case-insensitive description search.
type SearchTransactionsInput struct {
	Text string
}

// SearchTransactionsUseCase handles searching transactions by description.
type SearchTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
}

// NewSearchTransactionsUseCase creates a new SearchTransactionsUseCase instance.
func NewSearchTransactionsUseCase(transactionRepo adapter.TransactionRepository, transactor adapter.Transactor) *SearchTransactionsUseCase {
	return &SearchTransactionsUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// Execute performs the search.
func (uc *SearchTransactionsUseCase) Execute(ctx context.Context, input SearchTransactionsInput) (*ListTransactionsOutput, error) {
	var transactions []*entity.Transaction
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		transactions, err = uc.transactionRepo.FindByDescriptionContains(ctx, input.Text)
		if err != nil {
			return fmt.Errorf("failed to search transactions: %w", err)
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
