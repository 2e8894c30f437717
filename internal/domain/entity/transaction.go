package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// Transaction represents a single card purchase in the spending ledger.
type Transaction struct {
	ID          uuid.UUID
	PersonID    *uuid.UUID // nil in single-user mode
	Date        valueobject.Date
	Amount      decimal.Decimal
	Merchant    string
	Categories  []string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(personID *uuid.UUID, date valueobject.Date, amount decimal.Decimal, merchant string, categories []string, description string) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		PersonID:    personID,
		Date:        date,
		Amount:      amount,
		Merchant:    merchant,
		Categories:  normalizeCategories(categories),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasAnyCategory reports whether the transaction carries at least one of the
// given categories. Comparison is case-insensitive.
func (t *Transaction) HasAnyCategory(categories []string) bool {
	for _, want := range categories {
		for _, have := range t.Categories {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func normalizeCategories(categories []string) []string {
	var out []string
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
