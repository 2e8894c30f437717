package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing the ledger.
type ListTransactionsInput struct {
	PersonID *uuid.UUID
	Limit    int
	Offset   int
}

// ListTransactionsOutput represents a page of the ledger.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Total        int64
}

// ListTransactionsUseCase handles paginated ledger reads.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute lists transactions newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, total, err := uc.transactionRepo.List(ctx, input.PersonID, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &ListTransactionsOutput{
		Transactions: transactions,
		Total:        total,
	}, nil
}
