package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/controle-financeiro/api/internal/application/adapter"
	"github.com/controle-financeiro/api/internal/domain/entity"
	domainerror "github.com/controle-financeiro/api/internal/domain/error"
	"github.com/controle-financeiro/api/internal/integration/persistence/model"
)

// likeEscape is the escape character used in description searches.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).Omit(clause.Associations).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt
	transaction.UpdatedAt = transactionModel.UpdatedAt
	return nil
}

// FindAll retrieves every transaction, most recent first.
func (r *transactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	return r.find(r.query(ctx))
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).
		Preload("Category").
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByKind retrieves the transactions of the given kind.
func (r *transactionRepository) FindByKind(ctx context.Context, kind entity.TransactionKind) ([]*entity.Transaction, error) {
	return r.find(r.query(ctx).Where("kind = ?", string(kind)))
}

// FindByDateRange retrieves transactions dated within [from, to], both ends inclusive.
func (r *transactionRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.find(r.query(ctx).Where("date BETWEEN ? AND ?", entity.DateOf(from), entity.DateOf(to)))
}

// FindByCategoryID retrieves the transactions linked to a category.
func (r *transactionRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Transaction, error) {
	return r.find(r.query(ctx).Where("category_id = ?", categoryID))
}

// FindByDescriptionContains retrieves transactions whose description contains text, ignoring case.
func (r *transactionRepository) FindByDescriptionContains(ctx context.Context, text string) ([]*entity.Transaction, error) {
	pattern := "%" + likeReplacer.Replace(strings.ToLower(text)) + "%"
	return r.find(r.query(ctx).Where(lowerFunc(r.db)+"(description) LIKE ? ESCAPE '"+likeEscape+"'", pattern))
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).
		Model(transactionModel).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	transaction.UpdatedAt = transactionModel.UpdatedAt
	return nil
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsByID checks if a transaction with the given ID exists.
func (r *transactionRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountByDateRange counts transactions of any kind dated within [from, to].
func (r *transactionRepository) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("date BETWEEN ? AND ?", entity.DateOf(from), entity.DateOf(to)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SumAmountByKindAndDateRange sums the amounts of one kind within [from, to].
func (r *transactionRepository) SumAmountByKindAndDateRange(ctx context.Context, kind entity.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	var sumResult struct {
		Total decimal.Decimal
	}
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("kind = ? AND date BETWEEN ? AND ?", string(kind), entity.DateOf(from), entity.DateOf(to)).
		Scan(&sumResult)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return sumResult.Total.Round(entity.MoneyScale), nil
}

// query starts a listing with the category preloaded and a stable order.
func (r *transactionRepository) query(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Category").
		Order("date DESC").
		Order("id DESC")
}

func (r *transactionRepository) find(query *gorm.DB) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}
