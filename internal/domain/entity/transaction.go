package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single dated movement of money.
type Transaction struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Kind        TransactionKind
	Date        time.Time
	CategoryID  *int64
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Category is populated on reads when CategoryID is set.
	Category *Category
}

// NewTransaction creates a new Transaction entity with both timestamps set to now.
func NewTransaction(
	description string,
	amount decimal.Decimal,
	kind TransactionKind,
	date time.Time,
	categoryID *int64,
	notes *string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Date:        DateOf(date),
		CategoryID:  categoryID,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AttachCategory links the transaction to category, or detaches it when category is nil.
func (t *Transaction) AttachCategory(category *Category) {
	if category == nil {
		t.CategoryID = nil
		t.Category = nil
		return
	}
	id := category.ID
	t.CategoryID = &id
	t.Category = category
}

// Touch refreshes the modification timestamp.
func (t *Transaction) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
