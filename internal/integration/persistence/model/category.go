// Package model defines database models for persistence layer.
package model

import (
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	Description *string `gorm:"type:varchar(500)"`
	Kind        string  `gorm:"type:varchar(10);not null;index"`
	Color       *string `gorm:"type:varchar(7)"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Kind:        entity.TransactionKind(m.Kind),
		Color:       m.Color,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Kind:        string(category.Kind),
		Color:       category.Color,
	}
}
