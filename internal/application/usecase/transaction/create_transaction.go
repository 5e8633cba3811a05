package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	Date        time.Time
	CategoryID  *int64
	Notes       *string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	transactor      adapter.Transactor
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		transactor:      transactor,
	}
}

// Execute performs the transaction creation.
// The kind of the transaction is not required to match the kind of its category.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction := entity.NewTransaction(
		input.Description,
		input.Amount.Round(entity.MoneyScale),
		input.Kind,
		input.Date,
		nil,
		input.Notes,
	)

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := resolveCategory(ctx, uc.categoryRepo, input.CategoryID)
		if err != nil {
			return err
		}
		transaction.AttachCategory(category)

		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}
