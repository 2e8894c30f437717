package dto

import (
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/usecase/recommendation"
)

// MonthNeedResponse is what one month of a monthly offer still requires.
type MonthNeedResponse struct {
	Label                 string          `json:"label"`
	StartDate             string          `json:"start_date"`
	EndDate               string          `json:"end_date"`
	SpendingRemaining     decimal.Decimal `json:"spending_remaining"`
	TransactionsRemaining int             `json:"transactions_remaining"`
	DaysRemaining         int             `json:"days_remaining"`
}

// NeedsResponse is what an offer still requires inside a window.
type NeedsResponse struct {
	SpendingRemaining     decimal.Decimal     `json:"spending_remaining"`
	TransactionsRemaining int                 `json:"transactions_remaining"`
	Months                []MonthNeedResponse `json:"months,omitempty"`
}

// OfferNeedResponse pairs a member offer with its remaining needs.
type OfferNeedResponse struct {
	Offer OfferResponse `json:"offer"`
	Needs NeedsResponse `json:"needs"`
}

// SavingsResponse quantifies the benefit of combining offers.
type SavingsResponse struct {
	DollarsSaved      decimal.Decimal `json:"dollars_saved"`
	TransactionsSaved int             `json:"transactions_saved"`
}

// RecommendationResponse is one actionable spending recommendation.
type RecommendationResponse struct {
	Offers               []OfferNeedResponse `json:"offers"`
	StartDate            string              `json:"start_date"`
	EndDate              string              `json:"end_date"`
	Categories           []string            `json:"categories,omitempty"`
	MinTransaction       decimal.Decimal     `json:"min_transaction"`
	CombinedSpending     decimal.Decimal     `json:"combined_spending"`
	CombinedTransactions int                 `json:"combined_transactions"`
	Priority             string              `json:"priority"`
	Savings              *SavingsResponse    `json:"savings,omitempty"`
}

// OverlapResponse is one set of offers advanceable by the same purchases.
type OverlapResponse struct {
	OfferIDs       []string        `json:"offer_ids"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Categories     []string        `json:"categories,omitempty"`
	MinTransaction decimal.Decimal `json:"min_transaction"`
}

// PhaseResponse is one step of the master strategy.
type PhaseResponse struct {
	Offers               []OfferNeedResponse `json:"offers"`
	StartDate            string              `json:"start_date"`
	EndDate              string              `json:"end_date"`
	Categories           []string            `json:"categories,omitempty"`
	MinTransaction       decimal.Decimal     `json:"min_transaction"`
	CombinedSpending     decimal.Decimal     `json:"combined_spending"`
	CombinedTransactions int                 `json:"combined_transactions"`
	DaysRemaining        int                 `json:"days_remaining"`
	Urgent               bool                `json:"urgent"`
	Individual           bool                `json:"individual"`
}

// MasterStrategyResponse is the chronological plan over all active offers.
type MasterStrategyResponse struct {
	Phases               []PhaseResponse `json:"phases"`
	TotalPotentialReward decimal.Decimal `json:"total_potential_reward"`
}

// RecommendationsResponse bundles everything one engine run derives.
type RecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	Overlaps        []OverlapResponse        `json:"overlaps"`
	MasterStrategy  *MasterStrategyResponse  `json:"master_strategy,omitempty"`
	ActiveOffers    int                      `json:"active_offers"`
}

// ToRecommendationsResponse converts a full engine run to a DTO.
func ToRecommendationsResponse(out *recommendation.GetRecommendationsOutput) RecommendationsResponse {
	response := RecommendationsResponse{
		Recommendations: make([]RecommendationResponse, len(out.Recommendations)),
		Overlaps:        make([]OverlapResponse, len(out.Overlaps)),
		ActiveOffers:    out.ActiveOffers,
	}
	for i, rec := range out.Recommendations {
		response.Recommendations[i] = toRecommendationResponse(rec)
	}
	for i, overlap := range out.Overlaps {
		response.Overlaps[i] = toOverlapResponse(overlap)
	}
	if out.MasterStrategy != nil {
		strategy := toMasterStrategyResponse(out.MasterStrategy)
		response.MasterStrategy = &strategy
	}
	return response
}

func toRecommendationResponse(rec *recommendation.Recommendation) RecommendationResponse {
	response := RecommendationResponse{
		Offers:               toOfferNeedResponses(rec.Offers),
		StartDate:            rec.Window.Start.String(),
		EndDate:              rec.Window.End.String(),
		Categories:           rec.Categories,
		MinTransaction:       rec.MinTransaction,
		CombinedSpending:     rec.CombinedSpending,
		CombinedTransactions: rec.CombinedTransactions,
		Priority:             string(rec.Priority),
	}
	if rec.Savings != nil {
		response.Savings = &SavingsResponse{
			DollarsSaved:      rec.Savings.DollarsSaved,
			TransactionsSaved: rec.Savings.TransactionsSaved,
		}
	}
	return response
}

func toOverlapResponse(overlap *recommendation.Overlap) OverlapResponse {
	ids := make([]string, 0, overlap.OfferCount())
	for _, id := range overlap.OfferIDs() {
		ids = append(ids, id.String())
	}
	return OverlapResponse{
		OfferIDs:       ids,
		StartDate:      overlap.Window.Start.String(),
		EndDate:        overlap.Window.End.String(),
		Categories:     overlap.Categories,
		MinTransaction: overlap.MinTransaction,
	}
}

func toMasterStrategyResponse(strategy *recommendation.MasterStrategy) MasterStrategyResponse {
	response := MasterStrategyResponse{
		Phases:               make([]PhaseResponse, len(strategy.Phases)),
		TotalPotentialReward: strategy.TotalPotentialReward,
	}
	for i, phase := range strategy.Phases {
		response.Phases[i] = PhaseResponse{
			Offers:               toOfferNeedResponses(phase.Offers),
			StartDate:            phase.Window.Start.String(),
			EndDate:              phase.Window.End.String(),
			Categories:           phase.Categories,
			MinTransaction:       phase.MinTransaction,
			CombinedSpending:     phase.CombinedSpending,
			CombinedTransactions: phase.CombinedTransactions,
			DaysRemaining:        phase.DaysRemaining,
			Urgent:               phase.Urgent,
			Individual:           phase.Individual,
		}
	}
	return response
}

func toOfferNeedResponses(members []*recommendation.OfferNeed) []OfferNeedResponse {
	out := make([]OfferNeedResponse, len(members))
	for i, m := range members {
		out[i] = OfferNeedResponse{
			Offer: ToOfferResponse(m.Offer.Offer),
			Needs: toNeedsResponse(m.Needs),
		}
	}
	return out
}

func toNeedsResponse(needs *recommendation.Needs) NeedsResponse {
	response := NeedsResponse{
		SpendingRemaining:     needs.SpendingRemaining,
		TransactionsRemaining: needs.TransactionsRemaining,
	}
	for _, m := range needs.Months {
		response.Months = append(response.Months, MonthNeedResponse{
			Label:                 m.Label,
			StartDate:             m.Window.Start.String(),
			EndDate:               m.Window.End.String(),
			SpendingRemaining:     m.SpendingRemaining,
			TransactionsRemaining: m.TransactionsRemaining,
			DaysRemaining:         m.DaysRemaining,
		})
	}
	return response
}
