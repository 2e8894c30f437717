package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// DeleteOfferInput represents the input for offer deletion.
type DeleteOfferInput struct {
	OfferID uuid.UUID
}

// DeleteOfferUseCase handles offer deletion.
type DeleteOfferUseCase struct {
	offerRepo adapter.OfferRepository
}

// NewDeleteOfferUseCase creates a new DeleteOfferUseCase instance.
func NewDeleteOfferUseCase(offerRepo adapter.OfferRepository) *DeleteOfferUseCase {
	return &DeleteOfferUseCase{offerRepo: offerRepo}
}

// Execute soft-deletes the offer.
func (uc *DeleteOfferUseCase) Execute(ctx context.Context, input DeleteOfferInput) error {
	if _, err := uc.offerRepo.GetByID(ctx, input.OfferID); err != nil {
		return domainerror.NewOfferError(
			domainerror.ErrCodeOfferNotFound,
			"offer not found",
			domainerror.ErrOfferNotFound,
		)
	}
	if err := uc.offerRepo.Delete(ctx, input.OfferID); err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}
