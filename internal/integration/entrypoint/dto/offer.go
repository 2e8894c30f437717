package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// TierPayload is one tier in offer requests and responses.
type TierPayload struct {
	Threshold decimal.Decimal `json:"threshold"`
	Reward    decimal.Decimal `json:"reward"`
}

// CreateOfferRequest represents the request body for offer creation.
// Dates are ISO calendar-date strings (YYYY-MM-DD).
type CreateOfferRequest struct {
	PersonID          *string          `json:"person_id,omitempty" binding:"omitempty,uuid"`
	Name              string           `json:"name" binding:"required"`
	Type              string           `json:"type" binding:"required,oneof=spending transactions percent-back combo"`
	StartDate         string           `json:"start_date" binding:"required"`
	EndDate           string           `json:"end_date" binding:"required"`
	SpendingTarget    *decimal.Decimal `json:"spending_target,omitempty"`
	TransactionTarget *int             `json:"transaction_target,omitempty"`
	MinTransaction    *decimal.Decimal `json:"min_transaction,omitempty"`
	Categories        []string         `json:"categories,omitempty"`
	Reward            decimal.Decimal  `json:"reward"`
	BonusReward       *decimal.Decimal `json:"bonus_reward,omitempty"`
	Tiers             []TierPayload    `json:"tiers,omitempty"`
	PercentBack       *decimal.Decimal `json:"percent_back,omitempty"`
	MaxBack           *decimal.Decimal `json:"max_back,omitempty"`
	MinSpendThreshold *decimal.Decimal `json:"min_spend_threshold,omitempty"`
	Description       string           `json:"description,omitempty"`
	MonthlyTracking   bool             `json:"monthly_tracking"`
}

// UpdateOfferRequest represents the request body for offer update. Omitted
// fields are left unchanged.
type UpdateOfferRequest struct {
	Name              *string          `json:"name,omitempty"`
	Type              *string          `json:"type,omitempty" binding:"omitempty,oneof=spending transactions percent-back combo"`
	StartDate         *string          `json:"start_date,omitempty"`
	EndDate           *string          `json:"end_date,omitempty"`
	SpendingTarget    *decimal.Decimal `json:"spending_target,omitempty"`
	TransactionTarget *int             `json:"transaction_target,omitempty"`
	MinTransaction    *decimal.Decimal `json:"min_transaction,omitempty"`
	Categories        *[]string        `json:"categories,omitempty"`
	Reward            *decimal.Decimal `json:"reward,omitempty"`
	BonusReward       *decimal.Decimal `json:"bonus_reward,omitempty"`
	Tiers             *[]TierPayload   `json:"tiers,omitempty"`
	PercentBack       *decimal.Decimal `json:"percent_back,omitempty"`
	MaxBack           *decimal.Decimal `json:"max_back,omitempty"`
	MinSpendThreshold *decimal.Decimal `json:"min_spend_threshold,omitempty"`
	Description       *string          `json:"description,omitempty"`
	MonthlyTracking   *bool            `json:"monthly_tracking,omitempty"`
}

// CopyOfferRequest represents the request body for copying an offer.
type CopyOfferRequest struct {
	PersonID *string `json:"person_id,omitempty" binding:"omitempty,uuid"`
}

// OfferResponse represents a single offer in API responses.
type OfferResponse struct {
	ID                string           `json:"id"`
	PersonID          *string          `json:"person_id,omitempty"`
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	StartDate         string           `json:"start_date"`
	EndDate           string           `json:"end_date"`
	SpendingTarget    *decimal.Decimal `json:"spending_target,omitempty"`
	TransactionTarget *int             `json:"transaction_target,omitempty"`
	MinTransaction    *decimal.Decimal `json:"min_transaction,omitempty"`
	Categories        []string         `json:"categories,omitempty"`
	Reward            decimal.Decimal  `json:"reward"`
	BonusReward       *decimal.Decimal `json:"bonus_reward,omitempty"`
	Tiers             []TierPayload    `json:"tiers,omitempty"`
	PercentBack       *decimal.Decimal `json:"percent_back,omitempty"`
	MaxBack           *decimal.Decimal `json:"max_back,omitempty"`
	MinSpendThreshold *decimal.Decimal `json:"min_spend_threshold,omitempty"`
	Description       string           `json:"description,omitempty"`
	MonthlyTracking   bool             `json:"monthly_tracking"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// OfferListResponse represents the response for listing offers.
type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
}

// ToOfferResponse converts a domain Offer entity to an OfferResponse DTO.
func ToOfferResponse(o *entity.Offer) OfferResponse {
	response := OfferResponse{
		ID:                o.ID.String(),
		Name:              o.Name,
		Type:              string(o.Type),
		StartDate:         o.StartDate.String(),
		EndDate:           o.EndDate.String(),
		SpendingTarget:    o.SpendingTarget,
		TransactionTarget: o.TransactionTarget,
		MinTransaction:    o.MinTransaction,
		Categories:        o.Categories,
		Reward:            o.Reward,
		BonusReward:       o.BonusReward,
		Tiers:             toTierPayloads(o.Tiers),
		PercentBack:       o.PercentBack,
		MaxBack:           o.MaxBack,
		MinSpendThreshold: o.MinSpendThreshold,
		Description:       o.Description,
		MonthlyTracking:   o.MonthlyTracking,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if o.PersonID != nil {
		id := o.PersonID.String()
		response.PersonID = &id
	}
	return response
}

// ToOfferListResponse converts a list of offers to an OfferListResponse.
func ToOfferListResponse(offers []*entity.Offer) OfferListResponse {
	out := make([]OfferResponse, len(offers))
	for i, o := range offers {
		out[i] = ToOfferResponse(o)
	}
	return OfferListResponse{Offers: out}
}

// ToTiers converts tier payloads to domain tiers.
func ToTiers(payloads []TierPayload) []entity.Tier {
	if len(payloads) == 0 {
		return nil
	}
	tiers := make([]entity.Tier, len(payloads))
	for i, p := range payloads {
		tiers[i] = entity.Tier{Threshold: p.Threshold, Reward: p.Reward}
	}
	return tiers
}

func toTierPayloads(tiers []entity.Tier) []TierPayload {
	if len(tiers) == 0 {
		return nil
	}
	out := make([]TierPayload, len(tiers))
	for i, t := range tiers {
		out[i] = TierPayload{Threshold: t.Threshold, Reward: t.Reward}
	}
	return out
}
