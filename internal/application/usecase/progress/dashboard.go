package progress

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// DashboardTier orders offers on the dashboard. Lower values surface first.
type DashboardTier int

const (
	// TierActiveUrgent is an active, incomplete offer within the urgency window.
	TierActiveUrgent DashboardTier = 1
	// TierActive is any other active offer with something left to earn.
	TierActive DashboardTier = 2
	// TierArchivedSuccess is an expired offer whose reward was earned.
	TierArchivedSuccess DashboardTier = 3
	// TierMissed is an expired offer that never completed.
	TierMissed DashboardTier = 4
	// TierUpcoming is an offer whose window has not opened yet.
	TierUpcoming DashboardTier = 5
)

// UrgencyDays is how close to the deadline an incomplete offer becomes urgent.
const UrgencyDays = 7

// DashboardOffer is one offer with everything the dashboard shows about it.
type DashboardOffer struct {
	Offer               *entity.Offer
	Progress            *Progress
	Tier                DashboardTier
	DaysUntilExpiration int
}

// GetDashboardInput represents the input for the dashboard query.
type GetDashboardInput struct {
	PersonID *uuid.UUID
	Today    valueobject.Date // zero value means the current date
}

// GetDashboardOutput is the priority-sorted offer list.
type GetDashboardOutput struct {
	Offers []*DashboardOffer
}

// GetDashboardUseCase builds the prioritized offer overview: urgent active
// offers first, then the rest of the active set, archived successes, missed
// offers and finally upcoming ones, each group ordered by time pressure.
type GetDashboardUseCase struct {
	offerRepo       adapter.OfferRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(offerRepo adapter.OfferRepository, transactionRepo adapter.TransactionRepository) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		offerRepo:       offerRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute recomputes every offer's progress and sorts them for display.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	offers, err := uc.offerRepo.List(ctx, input.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	transactions, err := uc.transactionRepo.ListAll(ctx, input.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	today := input.Today
	if today.IsZero() {
		today = valueobject.DateOf(time.Now())
	}

	dashboard := make([]*DashboardOffer, 0, len(offers))
	for _, offer := range offers {
		p := Compute(offer, transactions, today)
		dashboard = append(dashboard, &DashboardOffer{
			Offer:               offer,
			Progress:            p,
			Tier:                classify(offer, p, today),
			DaysUntilExpiration: today.DaysUntil(offer.EndDate),
		})
	}

	sort.SliceStable(dashboard, func(i, j int) bool {
		if dashboard[i].Tier != dashboard[j].Tier {
			return dashboard[i].Tier < dashboard[j].Tier
		}
		return dashboard[i].DaysUntilExpiration < dashboard[j].DaysUntilExpiration
	})

	return &GetDashboardOutput{Offers: dashboard}, nil
}

func classify(offer *entity.Offer, p *Progress, today valueobject.Date) DashboardTier {
	switch p.Status {
	case entity.OfferStatusUpcoming:
		return TierUpcoming
	case entity.OfferStatusExpired:
		if p.Earned.IsPositive() {
			return TierArchivedSuccess
		}
		return TierMissed
	default:
		if p.Incomplete() && today.DaysUntil(offer.EndDate) <= UrgencyDays {
			return TierActiveUrgent
		}
		return TierActive
	}
}
