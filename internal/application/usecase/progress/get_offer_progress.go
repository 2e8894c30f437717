package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// GetOfferProgressInput represents the input for a single-offer progress query.
type GetOfferProgressInput struct {
	OfferID uuid.UUID
	Today   valueobject.Date // zero value means the current date
}

// GetOfferProgressOutput represents the computed progress for one offer.
type GetOfferProgressOutput struct {
	Offer    *entity.Offer
	Progress *Progress
}

// GetOfferProgressUseCase recomputes one offer's progress from the ledger.
type GetOfferProgressUseCase struct {
	offerRepo       adapter.OfferRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetOfferProgressUseCase creates a new GetOfferProgressUseCase instance.
func NewGetOfferProgressUseCase(offerRepo adapter.OfferRepository, transactionRepo adapter.TransactionRepository) *GetOfferProgressUseCase {
	return &GetOfferProgressUseCase{
		offerRepo:       offerRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute fetches the offer and its person's ledger, then computes progress.
func (uc *GetOfferProgressUseCase) Execute(ctx context.Context, input GetOfferProgressInput) (*GetOfferProgressOutput, error) {
	offer, err := uc.offerRepo.GetByID(ctx, input.OfferID)
	if err != nil {
		return nil, domainerror.NewOfferError(
			domainerror.ErrCodeOfferNotFound,
			"offer not found",
			domainerror.ErrOfferNotFound,
		)
	}

	transactions, err := uc.transactionRepo.ListAll(ctx, offer.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	today := input.Today
	if today.IsZero() {
		today = valueobject.DateOf(time.Now())
	}

	return &GetOfferProgressOutput{
		Offer:    offer,
		Progress: Compute(offer, transactions, today),
	}, nil
}
