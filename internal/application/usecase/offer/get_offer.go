package offer

import (
	"context"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// GetOfferInput represents the input for fetching one offer.
type GetOfferInput struct {
	OfferID uuid.UUID
}

// GetOfferOutput represents the fetched offer.
type GetOfferOutput struct {
	Offer *entity.Offer
}

// GetOfferUseCase handles single-offer retrieval.
type GetOfferUseCase struct {
	offerRepo adapter.OfferRepository
}

// NewGetOfferUseCase creates a new GetOfferUseCase instance.
func NewGetOfferUseCase(offerRepo adapter.OfferRepository) *GetOfferUseCase {
	return &GetOfferUseCase{offerRepo: offerRepo}
}

// Execute fetches the offer.
func (uc *GetOfferUseCase) Execute(ctx context.Context, input GetOfferInput) (*GetOfferOutput, error) {
	offer, err := uc.offerRepo.GetByID(ctx, input.OfferID)
	if err != nil {
		return nil, domainerror.NewOfferError(
			domainerror.ErrCodeOfferNotFound,
			"offer not found",
			domainerror.ErrOfferNotFound,
		)
	}
	return &GetOfferOutput{Offer: offer}, nil
}
