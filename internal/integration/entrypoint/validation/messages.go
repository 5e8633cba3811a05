package validation

import (
	"github.com/go-playground/validator/v10"
)

// messages holds the user-facing text per "<Struct>.<field>" and rule tag.
var messages = map[string]map[string]string{
	"CategoryRequest.nome": {
		"required": "O nome da categoria é obrigatório",
		"notblank": "O nome da categoria é obrigatório",
		"min":      "O nome deve ter entre 3 e 100 caracteres",
		"max":      "O nome deve ter entre 3 e 100 caracteres",
	},
	"CategoryRequest.descricao": {
		"max": "A descrição deve ter no máximo 500 caracteres",
	},
	"CategoryRequest.tipo": {
		"required": "O tipo da categoria é obrigatório",
	},
	"CategoryRequest.cor": {
		"hexrgb": "Cor inválida (formato: #RRGGBB)",
	},
	"TransactionRequest.descricao": {
		"required": "A descrição é obrigatória",
		"notblank": "A descrição é obrigatória",
		"min":      "A descrição deve ter entre 3 e 200 caracteres",
		"max":      "A descrição deve ter entre 3 e 200 caracteres",
	},
	"TransactionRequest.valor": {
		"required":       "O valor é obrigatório",
		"decimal_gt":     "O valor deve ser maior que zero",
		"decimal_digits": "Valor inválido (máximo: 99999999.99)",
	},
	"TransactionRequest.tipo": {
		"required": "O tipo da transação é obrigatório",
	},
	"TransactionRequest.data": {
		"required":  "A data é obrigatória",
		"notfuture": "A data não pode ser futura",
	},
	"TransactionRequest.observacoes": {
		"max": "As observações devem ter no máximo 1000 caracteres",
	},
}

// Messages renders each field error as "field: message".
func Messages(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Field()+": "+Message(fe))
	}
	return out
}

// Message returns the user-facing text for a single field error.
func Message(fe validator.FieldError) string {
	if byTag, ok := messages[fe.Namespace()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	if translator != nil {
		return fe.Translate(translator)
	}
	return fe.Error()
}
