// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// ListTransactionsOutput represents the output of every transaction listing.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// findTransaction loads a transaction, turning a miss into a NotFoundError.
func findTransaction(ctx context.Context, transactionRepo adapter.TransactionRepository, id int64) (*entity.Transaction, error) {
	transaction, err := transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return transaction, nil
}

// resolveCategory loads the category referenced by id; a nil id resolves to no category.
func resolveCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, id *int64) (*entity.Category, error) {
	if id == nil {
		return nil, nil
	}
	category, err := categoryRepo.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryNotFoundError(*id)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}
