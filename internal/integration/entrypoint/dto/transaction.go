package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/domain/entity"
)

// TransactionRequest represents the request body for transaction creation and update.
type TransactionRequest struct {
	Description string                 `json:"descricao" binding:"required,notblank,min=3,max=200"`
	Amount      *decimal.Decimal       `json:"valor" binding:"required,decimal_gt=0,decimal_digits=8_2"`
	Kind        entity.TransactionKind `json:"tipo" binding:"required"`
	Date        Date                   `json:"data" binding:"required,notfuture"`
	CategoryID  *int64                 `json:"categoriaId"`
	Notes       *string                `json:"observacoes" binding:"omitempty,max=1000"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            int64     `json:"id"`
	Description   string    `json:"descricao"`
	Amount        Money     `json:"valor"`
	Kind          string    `json:"tipo"`
	Date          Date      `json:"data"`
	CategoryID    *int64    `json:"categoriaId"`
	CategoryName  *string   `json:"categoriaNome"`
	CategoryColor *string   `json:"categoriaCor"`
	Notes         *string   `json:"observacoes"`
	CreatedAt     time.Time `json:"criadoEm"`
	UpdatedAt     time.Time `json:"atualizadoEm"`
}

// FinancialSummaryResponse represents the summary of a date window.
type FinancialSummaryResponse struct {
	TotalIncome      Money `json:"totalReceitas"`
	TotalExpense     Money `json:"totalDespesas"`
	Balance          Money `json:"saldo"`
	TransactionCount int64 `json:"quantidadeTransacoes"`
	From             Date  `json:"dataInicio"`
	To               Date  `json:"dataFim"`
}

// AmountOrZero returns the requested amount, or zero when absent.
func (r *TransactionRequest) AmountOrZero() decimal.Decimal {
	if r.Amount == nil {
		return decimal.Zero
	}
	return *r.Amount
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      NewMoney(tx.Amount),
		Kind:        string(tx.Kind),
		Date:        NewDate(tx.Date),
		CategoryID:  tx.CategoryID,
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}

	if tx.Category != nil {
		name := tx.Category.Name
		response.CategoryName = &name
		response.CategoryColor = tx.Category.Color
	}

	return response
}

// ToTransactionListResponse converts a slice of domain Transaction entities to response DTOs.
func ToTransactionListResponse(transactions []*entity.Transaction) []TransactionResponse {
	response := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = ToTransactionResponse(tx)
	}
	return response
}

// ToFinancialSummaryResponse converts a domain FinancialSummary to its response DTO.
func ToFinancialSummaryResponse(summary *entity.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		TotalIncome:      NewMoney(summary.TotalIncome),
		TotalExpense:     NewMoney(summary.TotalExpense),
		Balance:          NewMoney(summary.Balance),
		TransactionCount: summary.TransactionCount,
		From:             NewDate(summary.From),
		To:               NewDate(summary.To),
	}
}
