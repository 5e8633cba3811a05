package transaction

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// ListTransactionsByCategoryInput represents the input for listing a category's transactions.
type ListTransactionsByCategoryInput struct {
	CategoryID int64
}

// ListTransactionsByCategoryUseCase handles listing the transactions of one category.
type ListTransactionsByCategoryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	transactor      adapter.Transactor
}

// NewListTransactionsByCategoryUseCase creates a new ListTransactionsByCategoryUseCase instance.
func NewListTransactionsByCategoryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
) *ListTransactionsByCategoryUseCase {
	return &ListTransactionsByCategoryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		transactor:      transactor,
	}
}

// Execute fails with a NotFoundError when the category does not exist.
func (uc *ListTransactionsByCategoryUseCase) Execute(ctx context.Context, input ListTransactionsByCategoryInput) (*ListTransactionsOutput, error) {
	var transactions []*entity.Transaction
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		exists, err := uc.categoryRepo.ExistsByID(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to check category existence: %w", err)
		}
		if !exists {
			return domainerror.NewCategoryNotFoundError(input.CategoryID)
		}

		transactions, err = uc.transactionRepo.FindByCategoryID(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to list transactions by category: %w", err)
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
