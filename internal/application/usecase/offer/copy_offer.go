package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// CopyOfferInput represents the input for copying an offer to another person.
type CopyOfferInput struct {
	OfferID  uuid.UUID
	PersonID *uuid.UUID
}

// CopyOfferOutput represents the newly created copy.
type CopyOfferOutput struct {
	Offer *entity.Offer
}

// CopyOfferUseCase duplicates an offer for another card holder, keeping the
// terms but starting progress from scratch. Banks often run the same
// promotion on every card in a household.
type CopyOfferUseCase struct {
	offerRepo  adapter.OfferRepository
	personRepo adapter.PersonRepository
}

// NewCopyOfferUseCase creates a new CopyOfferUseCase instance.
func NewCopyOfferUseCase(offerRepo adapter.OfferRepository, personRepo adapter.PersonRepository) *CopyOfferUseCase {
	return &CopyOfferUseCase{
		offerRepo:  offerRepo,
		personRepo: personRepo,
	}
}

// Execute clones the offer under the target person.
func (uc *CopyOfferUseCase) Execute(ctx context.Context, input CopyOfferInput) (*CopyOfferOutput, error) {
	offer, err := uc.offerRepo.GetByID(ctx, input.OfferID)
	if err != nil {
		return nil, domainerror.NewOfferError(
			domainerror.ErrCodeOfferNotFound,
			"offer not found",
			domainerror.ErrOfferNotFound,
		)
	}

	if input.PersonID != nil {
		if _, err := uc.personRepo.GetByID(ctx, *input.PersonID); err != nil {
			return nil, domainerror.NewPersonError(
				domainerror.ErrCodePersonNotFound,
				"target person not found",
				domainerror.ErrPersonNotFound,
			)
		}
	}

	clone := offer.CopyFor(input.PersonID)
	if err := uc.offerRepo.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("failed to copy offer: %w", err)
	}

	return &CopyOfferOutput{Offer: clone}, nil
}
