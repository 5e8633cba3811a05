package entity

// Category groups transactions under a user-defined label.
type Category struct {
	ID          int64
	Name        string
	Description *string
	Kind        TransactionKind
	Color       *string
}

// NewCategory creates a new Category entity. The ID is assigned by the store.
func NewCategory(name string, description *string, kind TransactionKind, color *string) *Category {
	return &Category{
		Name:        name,
		Description: description,
		Kind:        kind,
		Color:       color,
	}
}
