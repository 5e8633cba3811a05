package category

import (
	"context"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// GetCategoryInput represents the input for fetching a category.
type GetCategoryInput struct {
	CategoryID int64
}

// GetCategoryOutput represents the output of fetching a category.
type GetCategoryOutput struct {
	Category *entity.Category
}

// GetCategoryUseCase handles fetching a single category.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository, transactor adapter.Transactor) *GetCategoryUseCase {
	return &GetCategoryUseCase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
	}
}

// Execute loads the category or fails with a NotFoundError.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	var category *entity.Category
	err := uc.transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		category, err = findCategory(ctx, uc.categoryRepo, input.CategoryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &GetCategoryOutput{
		Category: category,
	}, nil
}
