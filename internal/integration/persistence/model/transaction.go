package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PersonID    *uuid.UUID      `gorm:"type:uuid;index"`
	Date        string          `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Merchant    string          `gorm:"type:varchar(255);not null;index"`
	Categories  string          `gorm:"type:text"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() (*entity.Transaction, error) {
	date, err := valueobject.ParseDate(m.Date)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", m.ID, err)
	}

	categories, err := DecodeCategories(m.Categories)
	if err != nil {
		return nil, fmt.Errorf("transaction %s categories: %w", m.ID, err)
	}

	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:          m.ID,
		PersonID:    m.PersonID,
		Date:        date,
		Amount:      m.Amount,
		Merchant:    m.Merchant,
		Categories:  categories,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}, nil
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) (*TransactionModel, error) {
	categories, err := EncodeCategories(transaction.Categories)
	if err != nil {
		return nil, fmt.Errorf("transaction %s categories: %w", transaction.ID, err)
	}

	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:          transaction.ID,
		PersonID:    transaction.PersonID,
		Date:        transaction.Date.String(),
		Amount:      transaction.Amount,
		Merchant:    transaction.Merchant,
		Categories:  categories,
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
		DeletedAt:   deletedAt,
	}, nil
}
