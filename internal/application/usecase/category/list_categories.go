package category

import (
	"context"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Kind *entity.TransactionKind // Optional filter
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles listing categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository, transactor adapter.Transactor) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
	}
}

// Execute lists all categories, or only those of the requested kind.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var categories []*entity.Category
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		if input.Kind != nil {
			categories, err = uc.categoryRepo.FindByKind(ctx, *input.Kind)
		} else {
			categories, err = uc.categoryRepo.FindAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}
