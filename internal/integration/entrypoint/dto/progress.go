package dto

import (
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/entity"
)

// MonthProgressResponse is one month of a monthly-tracking offer.
type MonthProgressResponse struct {
	Label              string          `json:"label"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	Spending           decimal.Decimal `json:"spending"`
	Transactions       int             `json:"transactions"`
	Completed          bool            `json:"completed"`
	PartiallyCompleted bool            `json:"partially_completed"`
	TierReached        *TierPayload    `json:"tier_reached,omitempty"`
	Earned             decimal.Decimal `json:"earned"`
}

// ProgressResponse represents the computed progress of one offer.
type ProgressResponse struct {
	OfferID            string                  `json:"offer_id"`
	Status             string                  `json:"status"`
	TotalSpending      decimal.Decimal         `json:"total_spending"`
	TotalTransactions  int                     `json:"total_transactions"`
	Completed          bool                    `json:"completed"`
	PartiallyCompleted bool                    `json:"partially_completed"`
	PercentComplete    float64                 `json:"percent_complete"`
	TierReached        *TierPayload            `json:"tier_reached,omitempty"`
	Earned             decimal.Decimal         `json:"earned"`
	BonusEarned        bool                    `json:"bonus_earned"`
	Months             []MonthProgressResponse `json:"months,omitempty"`
	CompletedMonths    int                     `json:"completed_months"`
	QualifyingCount    int                     `json:"qualifying_count"`
}

// OfferProgressResponse pairs an offer with its computed progress.
type OfferProgressResponse struct {
	Offer    OfferResponse    `json:"offer"`
	Progress ProgressResponse `json:"progress"`
}

// DashboardOfferResponse is one dashboard entry.
type DashboardOfferResponse struct {
	Offer               OfferResponse    `json:"offer"`
	Progress            ProgressResponse `json:"progress"`
	Tier                int              `json:"tier"`
	DaysUntilExpiration int              `json:"days_until_expiration"`
}

// DashboardResponse is the priority-sorted offer overview.
type DashboardResponse struct {
	Offers []DashboardOfferResponse `json:"offers"`
}

// ToProgressResponse converts computed progress to a DTO.
func ToProgressResponse(p *progress.Progress) ProgressResponse {
	response := ProgressResponse{
		OfferID:            p.OfferID.String(),
		Status:             string(p.Status),
		TotalSpending:      p.TotalSpending,
		TotalTransactions:  p.TotalTransactions,
		Completed:          p.Completed,
		PartiallyCompleted: p.PartiallyCompleted,
		PercentComplete:    p.PercentComplete,
		TierReached:        toTierReached(p.TierReached),
		Earned:             p.Earned,
		BonusEarned:        p.BonusEarned,
		CompletedMonths:    p.CompletedMonths,
		QualifyingCount:    len(p.Qualifying),
	}
	for _, m := range p.Months {
		response.Months = append(response.Months, MonthProgressResponse{
			Label:              m.Label,
			StartDate:          m.Window.Start.String(),
			EndDate:            m.Window.End.String(),
			Spending:           m.Spending,
			Transactions:       m.Transactions,
			Completed:          m.Completed,
			PartiallyCompleted: m.PartiallyCompleted,
			TierReached:        toTierReached(m.TierReached),
			Earned:             m.Earned,
		})
	}
	return response
}

// ToDashboardResponse converts the dashboard output to a DTO.
func ToDashboardResponse(offers []*progress.DashboardOffer) DashboardResponse {
	out := make([]DashboardOfferResponse, len(offers))
	for i, d := range offers {
		out[i] = DashboardOfferResponse{
			Offer:               ToOfferResponse(d.Offer),
			Progress:            ToProgressResponse(d.Progress),
			Tier:                int(d.Tier),
			DaysUntilExpiration: d.DaysUntilExpiration,
		}
	}
	return DashboardResponse{Offers: out}
}

func toTierReached(t *entity.Tier) *TierPayload {
	if t == nil {
		return nil
	}
	return &TierPayload{Threshold: t.Threshold, Reward: t.Reward}
}
