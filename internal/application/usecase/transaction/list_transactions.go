package transaction

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Kind *entity.TransactionKind // Optional filter
}

// ListTransactionsUseCase handles listing all transactions, optionally by kind.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, transactor adapter.Transactor) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	var transactions []*entity.Transaction
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		if input.Kind != nil {
			transactions, err = uc.transactionRepo.FindByKind(ctx, *input.Kind)
		} else {
			transactions, err = uc.transactionRepo.FindAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
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
