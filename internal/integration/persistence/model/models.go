package model

// All returns every model owned by the schema, in migration order.
func All() []any {
	return []any{
		&CategoryModel{},
		&TransactionModel{},
	}
}
