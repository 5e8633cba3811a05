package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionResource is the user-facing name of the transaction resource.
const TransactionResource = "Transação"

const (
	ErrCodeTransactionNotFound ErrorCode = "TRX-010001"
)

// NewTransactionNotFoundError creates the error returned when transaction id does not exist.
func NewTransactionNotFoundError(id int64) *NotFoundError {
	return NewNotFoundError(ErrCodeTransactionNotFound, TransactionResource, id, ErrTransactionNotFound)
}
