package transaction

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
	"github.com/controle-financeiro/api/internal/integration/persistence"
	"github.com/controle-financeiro/api/internal/integration/persistence/model"
)

type fixture struct {
	transactions adapter.TransactionRepository
	categories   adapter.CategoryRepository
	transactor   adapter.Transactor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	return &fixture{
		transactions: persistence.NewTransactionRepository(db),
		categories:   persistence.NewCategoryRepository(db),
		transactor:   persistence.NewTransactor(db),
	}
}

func (f *fixture) category(t *testing.T, name string, kind entity.TransactionKind) *entity.Category {
	t.Helper()
	color := "#FF5733"
	category := entity.NewCategory(name, nil, kind, &color)
	require.NoError(t, f.categories.Create(context.Background(), category))
	return category
}

func (f *fixture) create(t *testing.T, description, amount string, kind entity.TransactionKind, day string, categoryID *int64) *entity.Transaction {
	t.Helper()
	output, err := NewCreateTransactionUseCase(f.transactions, f.categories, f.transactor).
		Execute(context.Background(), CreateTransactionInput{
			Description: description,
			Amount:      decimal.RequireFromString(amount),
			Kind:        kind,
			Date:        parseDate(day),
			CategoryID:  categoryID,
		})
	require.NoError(t, err)
	return output.Transaction
}

func parseDate(s string) time.Time {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateTransactionUseCase(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, "Alimentação", entity.TransactionKindExpense)

	created := f.create(t, "Almoço no restaurante", "150.50", entity.TransactionKindExpense, "2025-10-28", &food.ID)

	assert.Positive(t, created.ID)
	assert.Equal(t, "150.50", created.Amount.StringFixed(2))
	require.NotNil(t, created.Category)
	assert.Equal(t, "Alimentação", created.Category.Name)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateTransactionUseCase_KindMayDifferFromCategory(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, "Alimentação", entity.TransactionKindExpense)

	created := f.create(t, "Reembolso", "40.00", entity.TransactionKindIncome, "2025-10-28", &food.ID)

	assert.Equal(t, entity.TransactionKindIncome, created.Kind)
	assert.Equal(t, food.ID, *created.CategoryID)
}

func TestCreateTransactionUseCase_UnknownCategory(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateTransactionUseCase(f.transactions, f.categories, f.transactor)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		Description: "Almoço no restaurante",
		Amount:      decimal.RequireFromString("150.50"),
		Kind:        entity.TransactionKindExpense,
		Date:        parseDate("2025-10-28"),
		CategoryID:  int64Ptr(1),
	})

	var notFound *domainerror.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Categoria com ID 1 não encontrado(a)", notFound.Error())

	all, err := NewListTransactionsUseCase(f.transactions, f.transactor).Execute(context.Background(), ListTransactionsInput{})
	require.NoError(t, err)
	assert.Empty(t, all.Transactions)
}

func TestUpdateTransactionUseCase(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, "Alimentação", entity.TransactionKindExpense)
	created := f.create(t, "Almoço", "20.00", entity.TransactionKindExpense, "2025-10-02", &food.ID)
	uc := NewUpdateTransactionUseCase(f.transactions, f.categories, f.transactor)
	notes := "dividido"

	input := UpdateTransactionInput{
		TransactionID: created.ID,
		Description:   "Almoço de domingo",
		Amount:        decimal.RequireFromString("25.5"),
		Kind:          entity.TransactionKindExpense,
		Date:          parseDate("2025-10-05"),
		Notes:         &notes,
	}

	output, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, output.Transaction.CategoryID)
	assert.Equal(t, "25.50", output.Transaction.Amount.StringFixed(2))
	assert.False(t, output.Transaction.UpdatedAt.Before(created.UpdatedAt))

	again, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, output.Transaction.Description, again.Transaction.Description)
	assert.True(t, output.Transaction.Amount.Equal(again.Transaction.Amount))
	assert.Equal(t, output.Transaction.Date, again.Transaction.Date)

	input.CategoryID = int64Ptr(food.ID)
	output, err = uc.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, output.Transaction.Category)
	assert.Equal(t, "Alimentação", output.Transaction.Category.Name)

	input.CategoryID = int64Ptr(77)
	_, err = uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	input.TransactionID = 999
	_, err = uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestDeleteTransactionUseCase(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Cinema", "30.00", entity.TransactionKindExpense, "2025-10-02", nil)
	uc := NewDeleteTransactionUseCase(f.transactions, f.transactor)
	get := NewGetTransactionUseCase(f.transactions, f.transactor)

	require.NoError(t, uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID}))

	_, err := get.Execute(context.Background(), GetTransactionInput{TransactionID: created.ID})
	var notFound *domainerror.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, domainerror.TransactionResource, notFound.Resource)

	err = uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID})
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestListingUseCases(t *testing.T) {
	f := newFixture(t)
	food := f.category(t, "Alimentação", entity.TransactionKindExpense)
	empty := f.category(t, "Viagens", entity.TransactionKindExpense)
	f.create(t, "Salário", "5000.00", entity.TransactionKindIncome, "2025-10-10", nil)
	f.create(t, "Mercado", "300.00", entity.TransactionKindExpense, "2025-10-20", &food.ID)
	ctx := context.Background()

	kind := entity.TransactionKindExpense
	byKind, err := NewListTransactionsUseCase(f.transactions, f.transactor).Execute(ctx, ListTransactionsInput{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, byKind.Transactions, 1)
	assert.Equal(t, "Mercado", byKind.Transactions[0].Description)

	period := NewListTransactionsByPeriodUseCase(f.transactions, f.transactor)
	inRange, err := period.Execute(ctx, ListTransactionsByPeriodInput{From: parseDate("2025-10-01"), To: parseDate("2025-10-31")})
	require.NoError(t, err)
	assert.Len(t, inRange.Transactions, 2)

	inverted, err := period.Execute(ctx, ListTransactionsByPeriodInput{From: parseDate("2025-10-01"), To: parseDate("2025-09-01")})
	require.NoError(t, err)
	assert.Empty(t, inverted.Transactions)

	byCategory := NewListTransactionsByCategoryUseCase(f.transactions, f.categories, f.transactor)
	linked, err := byCategory.Execute(ctx, ListTransactionsByCategoryInput{CategoryID: food.ID})
	require.NoError(t, err)
	assert.Len(t, linked.Transactions, 1)

	none, err := byCategory.Execute(ctx, ListTransactionsByCategoryInput{CategoryID: empty.ID})
	require.NoError(t, err)
	assert.Empty(t, none.Transactions)

	_, err = byCategory.Execute(ctx, ListTransactionsByCategoryInput{CategoryID: 404})
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	found, err := NewSearchTransactionsUseCase(f.transactions, f.transactor).Execute(ctx, SearchTransactionsInput{Text: "mer"})
	require.NoError(t, err)
	require.Len(t, found.Transactions, 1)
	assert.Equal(t, "Mercado", found.Transactions[0].Description)
}

func TestGetSummaryUseCase(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Salário", "5000.00", entity.TransactionKindIncome, "2025-10-10", nil)
	f.create(t, "Aluguel", "3000.00", entity.TransactionKindExpense, "2025-10-20", nil)
	f.create(t, "Fora do período", "10.00", entity.TransactionKindExpense, "2025-11-01", nil)
	uc := NewGetSummaryUseCase(f.transactions, f.transactor)

	output, err := uc.Execute(context.Background(), GetSummaryInput{From: parseDate("2025-10-01"), To: parseDate("2025-10-31")})
	require.NoError(t, err)

	summary := output.Summary
	assert.Equal(t, "5000.00", summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "3000.00", summary.TotalExpense.StringFixed(2))
	assert.Equal(t, "2000.00", summary.Balance.StringFixed(2))
	assert.True(t, summary.Balance.Equal(summary.TotalIncome.Sub(summary.TotalExpense)))
	assert.Equal(t, int64(2), summary.TransactionCount)
	assert.Equal(t, parseDate("2025-10-01"), summary.From)
	assert.Equal(t, parseDate("2025-10-31"), summary.To)

	inverted, err := uc.Execute(context.Background(), GetSummaryInput{From: parseDate("2025-10-31"), To: parseDate("2025-10-01")})
	require.NoError(t, err)
	assert.True(t, inverted.Summary.Balance.IsZero())
	assert.Equal(t, int64(0), inverted.Summary.TransactionCount)
}
