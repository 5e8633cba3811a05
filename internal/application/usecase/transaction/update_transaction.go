package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
// A nil CategoryID detaches the transaction from its category.
type UpdateTransactionInput struct {
	TransactionID int64
	Description   string
	Amount        decimal.Decimal
	Kind          entity.TransactionKind
	Date          time.Time
	CategoryID    *int64
	Notes         *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	transactor      adapter.Transactor
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		transactor:      transactor,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	var transaction *entity.Transaction
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		transaction, err = findTransaction(ctx, uc.transactionRepo, input.TransactionID)
		if err != nil {
			return err
		}

		category, err := resolveCategory(ctx, uc.categoryRepo, input.CategoryID)
		if err != nil {
			return err
		}

		transaction.Description = input.Description
		transaction.Amount = input.Amount.Round(entity.MoneyScale)
		transaction.Kind = input.Kind
		transaction.Date = entity.DateOf(input.Date)
		transaction.Notes = input.Notes
		transaction.AttachCategory(category)
		transaction.Touch()

		if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: transaction,
	}, nil
}
