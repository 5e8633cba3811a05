// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/controle-financeiro/api/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category and assigns its ID.
	Create(ctx context.Context, category *entity.Category) error

	// FindAll retrieves every category ordered by name.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// FindByKind retrieves the categories of the given kind.
	FindByKind(ctx context.Context, kind entity.TransactionKind) ([]*entity.Category, error)

	// ExistsByName checks if a category with exactly this name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByID checks if a category with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Update persists every field of an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category together with its transactions.
	Delete(ctx context.Context, id int64) error
}
