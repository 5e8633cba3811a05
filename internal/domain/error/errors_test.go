package error

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *NotFoundError
		want string
	}{
		{name: "category", err: NewCategoryNotFoundError(1), want: "Categoria com ID 1 não encontrado(a)"},
		{name: "transaction", err: NewTransactionNotFoundError(42), want: "Transação com ID 42 não encontrado(a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDomainErrorsUnwrap(t *testing.T) {
	var err error = NewCategoryNotFoundError(3)
	assert.True(t, errors.Is(err, ErrCategoryNotFound))

	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(3), notFound.ID)

	err = NewCategoryNameExistsError("Alimentação")
	assert.True(t, errors.Is(err, ErrCategoryNameExists))
	assert.Equal(t, "Já existe uma categoria com o nome: Alimentação", err.Error())

	var business *BusinessError
	assert.True(t, errors.As(err, &business))
	assert.Equal(t, ErrCodeCategoryNameExists, business.Code)
}
