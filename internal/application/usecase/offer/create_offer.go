// Package offer contains offer-related use cases.
package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// CreateOfferInput represents the input for offer creation.
type CreateOfferInput struct {
	PersonID          *uuid.UUID
	Name              string
	Type              entity.OfferType
	StartDate         valueobject.Date
	EndDate           valueobject.Date
	SpendingTarget    *decimal.Decimal
	TransactionTarget *int
	MinTransaction    *decimal.Decimal
	Categories        []string
	Reward            decimal.Decimal
	BonusReward       *decimal.Decimal
	Tiers             []entity.Tier
	PercentBack       *decimal.Decimal
	MaxBack           *decimal.Decimal
	MinSpendThreshold *decimal.Decimal
	Description       string
	MonthlyTracking   bool
}

// CreateOfferOutput represents the output of offer creation.
type CreateOfferOutput struct {
	Offer *entity.Offer
}

// CreateOfferUseCase handles offer creation logic.
type CreateOfferUseCase struct {
	offerRepo adapter.OfferRepository
}

// NewCreateOfferUseCase creates a new CreateOfferUseCase instance.
func NewCreateOfferUseCase(offerRepo adapter.OfferRepository) *CreateOfferUseCase {
	return &CreateOfferUseCase{offerRepo: offerRepo}
}

// Execute performs the offer creation.
func (uc *CreateOfferUseCase) Execute(ctx context.Context, input CreateOfferInput) (*CreateOfferOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewOfferError(
			domainerror.ErrCodeMissingOfferFields,
			"offer name is required",
			nil,
		)
	}
	if !isValidOfferType(input.Type) {
		return nil, domainerror.NewOfferError(
			domainerror.ErrCodeInvalidOfferType,
			"type must be 'spending', 'transactions', 'percent-back' or 'combo'",
			domainerror.ErrInvalidOfferType,
		)
	}
	if err := validateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if err := validateAmounts(input.SpendingTarget, input.TransactionTarget, input.MinTransaction, input.Tiers); err != nil {
		return nil, err
	}

	offer := entity.NewOffer(input.PersonID, input.Name, input.Type, input.StartDate, input.EndDate)
	offer.SpendingTarget = input.SpendingTarget
	offer.TransactionTarget = input.TransactionTarget
	offer.MinTransaction = input.MinTransaction
	offer.Categories = input.Categories
	offer.Reward = input.Reward
	offer.BonusReward = input.BonusReward
	offer.Tiers = input.Tiers
	offer.PercentBack = input.PercentBack
	offer.MaxBack = input.MaxBack
	offer.MinSpendThreshold = input.MinSpendThreshold
	offer.Description = input.Description
	offer.MonthlyTracking = input.MonthlyTracking

	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return &CreateOfferOutput{Offer: offer}, nil
}

func isValidOfferType(t entity.OfferType) bool {
	return t == entity.OfferTypeSpending ||
		t == entity.OfferTypeTransactions ||
		t == entity.OfferTypePercentBack ||
		t == entity.OfferTypeCombo
}

func validateWindow(start, end valueobject.Date) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return domainerror.NewOfferError(
			domainerror.ErrCodeInvalidOfferDates,
			"offer window must have a start date on or before its end date",
			domainerror.ErrInvalidOfferDates,
		)
	}
	return nil
}

func validateAmounts(spendingTarget *decimal.Decimal, transactionTarget *int, minTransaction *decimal.Decimal, tiers []entity.Tier) error {
	invalid := func(msg string) error {
		return domainerror.NewOfferError(
			domainerror.ErrCodeInvalidOfferTarget,
			msg,
			domainerror.ErrInvalidOfferTarget,
		)
	}

	if spendingTarget != nil && !spendingTarget.IsPositive() {
		return invalid("spending target must be greater than zero")
	}
	if transactionTarget != nil && *transactionTarget <= 0 {
		return invalid("transaction target must be greater than zero")
	}
	if minTransaction != nil && minTransaction.IsNegative() {
		return invalid("minimum transaction cannot be negative")
	}
	for _, tier := range tiers {
		if !tier.Threshold.IsPositive() || tier.Reward.IsNegative() {
			return invalid("tier thresholds must be positive and rewards non-negative")
		}
	}
	return nil
}
