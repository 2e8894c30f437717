package progress

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// GetMatchingOffersInput represents the input for a reverse eligibility lookup.
type GetMatchingOffersInput struct {
	TransactionID uuid.UUID
}

// GetMatchingOffersOutput lists the offers a transaction counts toward.
type GetMatchingOffersOutput struct {
	Transaction *entity.Transaction
	Offers      []*entity.Offer
}

// GetMatchingOffersUseCase answers "which offers does this purchase count
// toward?" using the same eligibility check the progress engine applies.
type GetMatchingOffersUseCase struct {
	offerRepo       adapter.OfferRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetMatchingOffersUseCase creates a new GetMatchingOffersUseCase instance.
func NewGetMatchingOffersUseCase(offerRepo adapter.OfferRepository, transactionRepo adapter.TransactionRepository) *GetMatchingOffersUseCase {
	return &GetMatchingOffersUseCase{
		offerRepo:       offerRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute finds every offer of the transaction's person that covers it.
func (uc *GetMatchingOffersUseCase) Execute(ctx context.Context, input GetMatchingOffersInput) (*GetMatchingOffersOutput, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	offers, err := uc.offerRepo.List(ctx, transaction.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	var matching []*entity.Offer
	for _, offer := range offers {
		if offer.Covers(transaction) {
			matching = append(matching, offer)
		}
	}

	return &GetMatchingOffersOutput{
		Transaction: transaction,
		Offers:      matching,
	}, nil
}
