package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
)

// ListOffersInput represents the input for listing offers.
type ListOffersInput struct {
	PersonID *uuid.UUID
}

// ListOffersOutput represents the listed offers.
type ListOffersOutput struct {
	Offers []*entity.Offer
}

// ListOffersUseCase handles offer listing.
type ListOffersUseCase struct {
	offerRepo adapter.OfferRepository
}

// NewListOffersUseCase creates a new ListOffersUseCase instance.
func NewListOffersUseCase(offerRepo adapter.OfferRepository) *ListOffersUseCase {
	return &ListOffersUseCase{offerRepo: offerRepo}
}

// Execute lists offers, optionally filtered by person.
func (uc *ListOffersUseCase) Execute(ctx context.Context, input ListOffersInput) (*ListOffersOutput, error) {
	offers, err := uc.offerRepo.List(ctx, input.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return &ListOffersOutput{Offers: offers}, nil
}
