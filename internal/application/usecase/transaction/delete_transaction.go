package transaction

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID int64
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository, transactor adapter.Transactor) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := uc.transactionRepo.ExistsByID(ctx, input.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to check transaction existence: %w", err)
		}
		if !exists {
			return domainerror.NewTransactionNotFoundError(input.TransactionID)
		}

		if err := uc.transactionRepo.Delete(ctx, input.TransactionID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
}
