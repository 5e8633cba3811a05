package dto

import (
	"github.com/controle-financeiro/api/internal/domain/entity"
)

// CategoryRequest represents the request body for category creation and update.
type CategoryRequest struct {
	Name        string                 `json:"nome" binding:"required,notblank,min=3,max=100"`
	Description *string                `json:"descricao" binding:"omitempty,max=500"`
	Kind        entity.TransactionKind `json:"tipo" binding:"required"`
	Color       *string                `json:"cor" binding:"omitempty,hexrgb"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
	Kind        string  `json:"tipo"`
	Color       *string `json:"cor"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Kind:        string(cat.Kind),
		Color:       cat.Color,
	}
}

// ToCategoryListResponse converts a slice of domain Category entities to response DTOs.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = ToCategoryResponse(cat)
	}
	return response
}
