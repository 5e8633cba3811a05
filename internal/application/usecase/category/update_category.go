package category

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
// Every field is overwritten; absent optional fields are cleared.
type UpdateCategoryInput struct {
	CategoryID  int64
	Name        string
	Description *string
	Kind        entity.TransactionKind
	Color       *string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, transactor adapter.Transactor) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	var category *entity.Category
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		category, err = findCategory(ctx, uc.categoryRepo, input.CategoryID)
		if err != nil {
			return err
		}

		// Keeping the current name must not trip the uniqueness check
		if input.Name != category.Name {
			exists, err := uc.categoryRepo.ExistsByName(ctx, input.Name)
			if err != nil {
				return fmt.Errorf("failed to check category name existence: %w", err)
			}
			if exists {
				return domainerror.NewCategoryNameExistsError(input.Name)
			}
		}

		category.Name = input.Name
		category.Description = input.Description
		category.Kind = input.Kind
		category.Color = input.Color

		if err := uc.categoryRepo.Update(ctx, category); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
