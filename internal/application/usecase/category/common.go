// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
)

// findCategory loads a category, turning a miss into a NotFoundError.
func findCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, id int64) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}
