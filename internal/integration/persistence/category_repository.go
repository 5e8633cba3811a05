package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
	"github.com/controle-financeiro/api/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := conn(ctx, r.db).Omit(clause.Associations).Create(categoryModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.NewCategoryNameExistsError(category.Name)
		}
		return result.Error
	}
	category.ID = categoryModel.ID
	return nil
}

// FindAll retrieves every category ordered by name.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := conn(ctx, r.db).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toCategoryEntities(categoryModels), nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByKind retrieves the categories of the given kind.
func (r *categoryRepository) FindByKind(ctx context.Context, kind entity.TransactionKind) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := conn(ctx, r.db).
		Where("kind = ?", string(kind)).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toCategoryEntities(categoryModels), nil
}

// ExistsByName checks if a category with exactly this name exists.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.CategoryModel{}).
		Where("name = ?", name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ExistsByID checks if a category with the given ID exists.
func (r *categoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.CategoryModel{}).
		Where("id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := conn(ctx, r.db).
		Model(categoryModel).
		Select("*").
		Omit("id", clause.Associations).
		Updates(categoryModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.NewCategoryNameExistsError(category.Name)
		}
		return result.Error
	}
	return nil
}

// Delete removes a category and every transaction that references it.
// The foreign key cascades as well; deleting the children first keeps the
// behavior identical on databases where foreign keys are not enforced.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete category transactions: %w", err)
		}
		if err := tx.Delete(&model.CategoryModel{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

func toCategoryEntities(categoryModels []model.CategoryModel) []*entity.Category {
	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories
}
