package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when attempting to use a name another category already has.
	ErrCategoryNameExists = errors.New("category name already exists")
)

// CategoryResource is the user-facing name of the category resource.
const CategoryResource = "Categoria"

const (
	ErrCodeCategoryNotFound   ErrorCode = "CAT-010001"
	ErrCodeCategoryNameExists ErrorCode = "CAT-010002"
)

// NewCategoryNotFoundError creates the error returned when category id does not exist.
func NewCategoryNotFoundError(id int64) *NotFoundError {
	return NewNotFoundError(ErrCodeCategoryNotFound, CategoryResource, id, ErrCategoryNotFound)
}

// NewCategoryNameExistsError creates the error returned when name is already taken.
func NewCategoryNameExistsError(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeCategoryNameExists,
		"Já existe uma categoria com o nome: "+name,
		ErrCategoryNameExists,
	)
}
