package category

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name        string
	Description *string
	Kind        entity.TransactionKind
	Color       *string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, transactor adapter.Transactor) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
	}
}

// Execute performs the category creation.
// The name check is advisory; the unique index decides concurrent creates.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	category := entity.NewCategory(input.Name, input.Description, input.Kind, input.Color)

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := uc.categoryRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return fmt.Errorf("failed to check category name existence: %w", err)
		}
		if exists {
			return domainerror.NewCategoryNameExistsError(input.Name)
		}

		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
