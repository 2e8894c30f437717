package offer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// UpdateOfferInput represents the input for updating an offer. Nil fields
// are left unchanged; pointer-to-pointer fields distinguish "leave alone"
// from "clear".
type UpdateOfferInput struct {
	OfferID           uuid.UUID
	Name              *string
	Type              *entity.OfferType
	StartDate         *valueobject.Date
	EndDate           *valueobject.Date
	SpendingTarget    **decimal.Decimal
	TransactionTarget **int
	MinTransaction    **decimal.Decimal
	Categories        *[]string
	Reward            *decimal.Decimal
	BonusReward       **decimal.Decimal
	Tiers             *[]entity.Tier
	PercentBack       **decimal.Decimal
	MaxBack           **decimal.Decimal
	MinSpendThreshold **decimal.Decimal
	Description       *string
	MonthlyTracking   *bool
}

// UpdateOfferOutput represents the updated offer.
type UpdateOfferOutput struct {
	Offer *entity.Offer
}

// UpdateOfferUseCase handles offer updates.
type UpdateOfferUseCase struct {
	offerRepo adapter.OfferRepository
}

// NewUpdateOfferUseCase creates a new UpdateOfferUseCase instance.
func NewUpdateOfferUseCase(offerRepo adapter.OfferRepository) *UpdateOfferUseCase {
	return &UpdateOfferUseCase{offerRepo: offerRepo}
}

// Execute applies the changes and revalidates the offer.
func (uc *UpdateOfferUseCase) Execute(ctx context.Context, input UpdateOfferInput) (*UpdateOfferOutput, error) {
	offer, err := uc.offerRepo.GetByID(ctx, input.OfferID)
	if err != nil {
		return nil, domainerror.NewOfferError(
			domainerror.ErrCodeOfferNotFound,
			"offer not found",
			domainerror.ErrOfferNotFound,
		)
	}

	if input.Name != nil {
		offer.Name = *input.Name
	}
	if input.Type != nil {
		if !isValidOfferType(*input.Type) {
			return nil, domainerror.NewOfferError(
				domainerror.ErrCodeInvalidOfferType,
				"type must be 'spending', 'transactions', 'percent-back' or 'combo'",
				domainerror.ErrInvalidOfferType,
			)
		}
		offer.Type = *input.Type
	}
	if input.StartDate != nil {
		offer.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		offer.EndDate = *input.EndDate
	}
	if input.SpendingTarget != nil {
		offer.SpendingTarget = *input.SpendingTarget
	}
	if input.TransactionTarget != nil {
		offer.TransactionTarget = *input.TransactionTarget
	}
	if input.MinTransaction != nil {
		offer.MinTransaction = *input.MinTransaction
	}
	if input.Categories != nil {
		offer.Categories = *input.Categories
	}
	if input.Reward != nil {
		offer.Reward = *input.Reward
	}
	if input.BonusReward != nil {
		offer.BonusReward = *input.BonusReward
	}
	if input.Tiers != nil {
		offer.Tiers = *input.Tiers
	}
	if input.PercentBack != nil {
		offer.PercentBack = *input.PercentBack
	}
	if input.MaxBack != nil {
		offer.MaxBack = *input.MaxBack
	}
	if input.MinSpendThreshold != nil {
		offer.MinSpendThreshold = *input.MinSpendThreshold
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}
	if input.MonthlyTracking != nil {
		offer.MonthlyTracking = *input.MonthlyTracking
	}

	if err := validateWindow(offer.StartDate, offer.EndDate); err != nil {
		return nil, err
	}
	if err := validateAmounts(offer.SpendingTarget, offer.TransactionTarget, offer.MinTransaction, offer.Tiers); err != nil {
		return nil, err
	}

	offer.UpdatedAt = time.Now().UTC()
	if err := uc.offerRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	return &UpdateOfferOutput{Offer: offer}, nil
}
