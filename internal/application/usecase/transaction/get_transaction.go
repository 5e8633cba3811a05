package transaction

import (
	"context"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// GetTransactionInput represents the input for fetching a transaction.
type GetTransactionInput struct {
	TransactionID int64
}

// GetTransactionOutput represents the output of fetching a transaction.
type GetTransactionOutput struct {
	Transaction *entity.Transaction
}

// GetTransactionUseCase handles fetching a single transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository, transactor adapter.Transactor) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// Execute loads the transaction or fails with a NotFoundError.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	var transaction *entity.Transaction
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		transaction, err = findTransaction(ctx, uc.transactionRepo, input.TransactionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &GetTransactionOutput{
		Transaction: transaction,
	}, nil
}
