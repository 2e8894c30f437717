package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// TransactionRepository persists the spending ledger.
type TransactionRepository interface {
	// Create stores a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List retrieves transactions ordered by date descending. A nil personID
	// returns every transaction. limit <= 0 disables pagination. The second
	// return value is the total row count before pagination.
	List(ctx context.Context, personID *uuid.UUID, limit, offset int) ([]*entity.Transaction, int64, error)

	// ListAll retrieves the full ledger for a person (nil for everyone),
	// ordered by date ascending. Used by the progress and recommendation
	// engines, which always recompute from the complete ledger.
	ListAll(ctx context.Context, personID *uuid.UUID) ([]*entity.Transaction, error)

	// Update stores changes to an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// Merchants retrieves distinct merchant names ordered alphabetically.
	Merchants(ctx context.Context, personID *uuid.UUID) ([]string, error)

	// MerchantCategories retrieves the most common category set recorded for
	// a merchant, for autocomplete. Empty when the merchant is unknown.
	MerchantCategories(ctx context.Context, merchant string) ([]string, error)
}
