package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
// Listing methods return transactions with their category loaded.
type TransactionRepository interface {
	// Create inserts a new transaction and assigns its ID.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindAll retrieves every transaction.
	FindAll(ctx context.Context) ([]*entity.Transaction, error)

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Transaction, error)

	// FindByKind retrieves the transactions of the given kind.
	FindByKind(ctx context.Context, kind entity.TransactionKind) ([]*entity.Transaction, error)

	// FindByDateRange retrieves transactions dated within [from, to], both ends inclusive.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)

	// FindByCategoryID retrieves the transactions linked to a category.
	FindByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Transaction, error)

	// FindByDescriptionContains retrieves transactions whose description contains text, ignoring case.
	FindByDescriptionContains(ctx context.Context, text string) ([]*entity.Transaction, error)

	// Update persists every field of an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id int64) error

	// ExistsByID checks if a transaction with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// CountByDateRange counts transactions of any kind dated within [from, to].
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)

	// SumAmountByKindAndDateRange sums the amounts of one kind within [from, to]; zero when empty.
	SumAmountByKindAndDateRange(ctx context.Context, kind entity.TransactionKind, from, to time.Time) (decimal.Decimal, error)
}
