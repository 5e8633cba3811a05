package persistence

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

	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
	"github.com/controle-financeiro/api/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func date(s string) time.Time {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func createCategory(t *testing.T, repo interface {
	Create(context.Context, *entity.Category) error
}, name string, kind entity.TransactionKind) *entity.Category {
	t.Helper()
	category := entity.NewCategory(name, nil, kind, strPtr("#FF5733"))
	require.NoError(t, repo.Create(context.Background(), category))
	return category
}

func createTransaction(t *testing.T, db *gorm.DB, description, amount string, kind entity.TransactionKind, day string, category *entity.Category) *entity.Transaction {
	t.Helper()
	tx := entity.NewTransaction(description, decimal.RequireFromString(amount), kind, date(day), nil, nil)
	tx.AttachCategory(category)
	require.NoError(t, NewTransactionRepository(db).Create(context.Background(), tx))
	return tx
}

func TestCategoryRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	food := createCategory(t, repo, "Alimentação", entity.TransactionKindExpense)
	salary := createCategory(t, repo, "Salário", entity.TransactionKindIncome)
	assert.Equal(t, int64(1), food.ID)
	assert.Equal(t, int64(2), salary.ID)

	found, err := repo.FindByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alimentação", found.Name)
	assert.Equal(t, entity.TransactionKindExpense, found.Kind)
	require.NotNil(t, found.Color)
	assert.Equal(t, "#FF5733", *found.Color)
	assert.Nil(t, found.Description)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	incomes, err := repo.FindByKind(ctx, entity.TransactionKindIncome)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Salário", incomes[0].Name)

	exists, err := repo.ExistsByName(ctx, "Alimentação")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, 99)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}

func TestCategoryRepository_DuplicateNameIsBusinessError(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	createCategory(t, repo, "Alimentação", entity.TransactionKindExpense)

	err := repo.Create(context.Background(), entity.NewCategory("Alimentação", nil, entity.TransactionKindExpense, nil))

	var business *domainerror.BusinessError
	require.True(t, errors.As(err, &business))
	assert.Contains(t, business.Message, "Alimentação")
}

func TestCategoryRepository_UpdateOverwritesAllFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := createCategory(t, repo, "Lazer", entity.TransactionKindExpense)
	category.Name = "Viagens"
	category.Description = strPtr("Passagens e hotéis")
	category.Color = nil

	require.NoError(t, repo.Update(ctx, category))

	found, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Viagens", found.Name)
	require.NotNil(t, found.Description)
	assert.Equal(t, "Passagens e hotéis", *found.Description)
	assert.Nil(t, found.Color)
}

func TestCategoryRepository_DeleteCascadesToTransactions(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	transactions := NewTransactionRepository(db)
	ctx := context.Background()

	food := createCategory(t, categories, "Alimentação", entity.TransactionKindExpense)
	dependent := createTransaction(t, db, "Almoço", "35.90", entity.TransactionKindExpense, "2025-10-02", food)
	other := createTransaction(t, db, "Salário", "5000.00", entity.TransactionKindIncome, "2025-10-05", nil)

	require.NoError(t, categories.Delete(ctx, food.ID))

	exists, err := categories.ExistsByID(ctx, food.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = transactions.FindByID(ctx, dependent.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	_, err = transactions.FindByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestTransactionRepository_CreateAndFindByID(t *testing.T) {
	db := newTestDB(t)
	food := createCategory(t, NewCategoryRepository(db), "Alimentação", entity.TransactionKindExpense)
	repo := NewTransactionRepository(db)

	created := createTransaction(t, db, "Almoço no restaurante", "150.50", entity.TransactionKindExpense, "2025-10-28", food)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Almoço no restaurante", found.Description)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, "150.50", found.Amount.StringFixed(2))
	assert.Equal(t, date("2025-10-28"), found.Date)
	require.NotNil(t, found.CategoryID)
	assert.Equal(t, food.ID, *found.CategoryID)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Alimentação", found.Category.Name)
}

func TestTransactionRepository_Queries(t *testing.T) {
	db := newTestDB(t)
	food := createCategory(t, NewCategoryRepository(db), "Alimentação", entity.TransactionKindExpense)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	createTransaction(t, db, "Salário de outubro", "5000.00", entity.TransactionKindIncome, "2025-10-01", nil)
	createTransaction(t, db, "Mercado", "300.10", entity.TransactionKindExpense, "2025-10-15", food)
	createTransaction(t, db, "Restaurante 100% vegano", "80.00", entity.TransactionKindExpense, "2025-10-31", food)
	createTransaction(t, db, "Aluguel", "1500.00", entity.TransactionKindExpense, "2025-11-01", nil)

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		got, err := repo.FindByDateRange(ctx, date("2025-10-01"), date("2025-10-31"))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Restaurante 100% vegano", got[0].Description)
		assert.Equal(t, "Salário de outubro", got[2].Description)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		got, err := repo.FindByDateRange(ctx, date("2025-10-31"), date("2025-10-01"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("by kind", func(t *testing.T) {
		got, err := repo.FindByKind(ctx, entity.TransactionKindIncome)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Salário de outubro", got[0].Description)
	})

	t.Run("by category", func(t *testing.T) {
		got, err := repo.FindByCategoryID(ctx, food.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("description search ignores case", func(t *testing.T) {
		got, err := repo.FindByDescriptionContains(ctx, "MERCA")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Mercado", got[0].Description)
	})

	t.Run("description search folds accented letters", func(t *testing.T) {
		createTransaction(t, db, "ALMOÇO executivo", "45.00", entity.TransactionKindExpense, "2025-09-10", nil)

		got, err := repo.FindByDescriptionContains(ctx, "almoço")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ALMOÇO executivo", got[0].Description)

		got, err = repo.FindByDescriptionContains(ctx, "ÇO EXEC")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("description search treats wildcards literally", func(t *testing.T) {
		got, err := repo.FindByDescriptionContains(ctx, "100%")
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = repo.FindByDescriptionContains(ctx, "%")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("aggregations", func(t *testing.T) {
		income, err := repo.SumAmountByKindAndDateRange(ctx, entity.TransactionKindIncome, date("2025-10-01"), date("2025-10-31"))
		require.NoError(t, err)
		assert.Equal(t, "5000.00", income.StringFixed(2))

		expense, err := repo.SumAmountByKindAndDateRange(ctx, entity.TransactionKindExpense, date("2025-10-01"), date("2025-10-31"))
		require.NoError(t, err)
		assert.Equal(t, "380.10", expense.StringFixed(2))

		count, err := repo.CountByDateRange(ctx, date("2025-10-01"), date("2025-10-31"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		empty, err := repo.SumAmountByKindAndDateRange(ctx, entity.TransactionKindIncome, date("2024-01-01"), date("2024-01-31"))
		require.NoError(t, err)
		assert.True(t, empty.IsZero())
	})
}

func TestTransactionRepository_UpdateDetachesCategory(t *testing.T) {
	db := newTestDB(t)
	food := createCategory(t, NewCategoryRepository(db), "Alimentação", entity.TransactionKindExpense)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	created := createTransaction(t, db, "Almoço", "20.00", entity.TransactionKindExpense, "2025-10-02", food)

	created.AttachCategory(nil)
	created.Description = "Almoço de domingo"
	created.Notes = strPtr("com a família")
	created.Touch()
	require.NoError(t, repo.Update(ctx, created))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)
	assert.Nil(t, found.Category)
	assert.Equal(t, "Almoço de domingo", found.Description)
	require.NotNil(t, found.Notes)
	assert.Equal(t, "com a família", *found.Notes)

	require.NoError(t, repo.Delete(ctx, created.ID))
	exists, err := repo.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	transactor := NewTransactor(db)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, entity.NewCategory("Temporária", nil, entity.TransactionKindExpense, nil)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := repo.ExistsByName(ctx, "Temporária")
	require.NoError(t, err)
	assert.False(t, exists)

	err = transactor.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.FindAll(ctx)
		return err
	})
	assert.NoError(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: categories.name (2067)")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
