package category

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID int64
}

// DeleteCategoryUseCase handles category deletion logic.
// Transactions linked to the category are deleted with it.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, transactor adapter.Transactor) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := uc.categoryRepo.ExistsByID(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to check category existence: %w", err)
		}
		if !exists {
			return domainerror.NewCategoryNotFoundError(input.CategoryID)
		}

		if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}
