package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Description string          `gorm:"type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Kind        string          `gorm:"type:varchar(10);not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	CategoryID  *int64          `gorm:"index"`
	Notes       *string         `gorm:"type:varchar(1000)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	transaction := &entity.Transaction{
		ID:          m.ID,
		Description: m.Description,
		Amount:      m.Amount.Round(entity.MoneyScale),
		Kind:        entity.TransactionKind(m.Kind),
		Date:        entity.DateOf(m.Date),
		CategoryID:  m.CategoryID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Category != nil {
		transaction.Category = m.Category.ToEntity()
	}
	return transaction
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
// The Category relation is left empty; only CategoryID is persisted.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Kind:        string(transaction.Kind),
		Date:        entity.DateOf(transaction.Date),
		CategoryID:  transaction.CategoryID,
		Notes:       transaction.Notes,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}
