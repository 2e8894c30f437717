package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
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
	transactionModel, err := model.TransactionFromEntity(transaction)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByID retrieves a transaction by its ID.
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity()
}

// List retrieves a page of transactions ordered by date descending.
func (r *transactionRepository) List(ctx context.Context, personID *uuid.UUID, limit, offset int) ([]*entity.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})
	if personID != nil {
		query = query.Where("person_id = ?", *personID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var transactionModels []model.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, 0, err
	}

	transactions, err := toEntities(transactionModels)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// ListAll retrieves the full ledger ordered by date ascending.
func (r *transactionRepository) ListAll(ctx context.Context, personID *uuid.UUID) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Order("date ASC, created_at ASC")
	if personID != nil {
		query = query.Where("person_id = ?", *personID)
	}

	var transactionModels []model.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return toEntities(transactionModels)
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel, err := model.TransactionFromEntity(transaction)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a transaction from the database (soft delete).
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Merchants retrieves distinct merchant names ordered alphabetically.
func (r *transactionRepository) Merchants(ctx context.Context, personID *uuid.UUID) ([]string, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Distinct("merchant").
		Order("merchant ASC")
	if personID != nil {
		query = query.Where("person_id = ?", *personID)
	}

	var merchants []string
	if err := query.Pluck("merchant", &merchants).Error; err != nil {
		return nil, err
	}
	return merchants, nil
}

// MerchantCategories retrieves the most common category set recorded for a
// merchant. The grouping runs over the raw JSON column, so identical
// category sets count together.
func (r *transactionRepository) MerchantCategories(ctx context.Context, merchant string) ([]string, error) {
	var raw string
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("categories").
		Where("merchant = ?", merchant).
		Group("categories").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&raw)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return model.DecodeCategories(raw)
}

func toEntities(models []model.TransactionModel) ([]*entity.Transaction, error) {
	transactions := make([]*entity.Transaction, len(models))
	for i, tm := range models {
		transaction, err := tm.ToEntity()
		if err != nil {
			return nil, err
		}
		transactions[i] = transaction
	}
	return transactions, nil
}
