package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// GetRecommendationsInput represents the input for a full engine run.
type GetRecommendationsInput struct {
	PersonID *uuid.UUID
	Today    valueobject.Date // zero value means the current date
}

// GetRecommendationsOutput bundles everything the engine derives from one
// snapshot of the ledger.
type GetRecommendationsOutput struct {
	Recommendations []*Recommendation
	Overlaps        []*Overlap
	MasterStrategy  *MasterStrategy
	ActiveOffers    int
}

// GetRecommendationsUseCase loads a consistent snapshot of offers and
// transactions and runs the full pipeline: progress, overlaps,
// recommendations, master strategy. Results are derived fresh on every call
// and never persisted.
type GetRecommendationsUseCase struct {
	offerRepo       adapter.OfferRepository
	transactionRepo adapter.TransactionRepository
	maxOverlapSet   int
}

// NewGetRecommendationsUseCase creates a new GetRecommendationsUseCase
// instance. maxOverlapSet bounds the overlap search; non-positive values use
// the package default.
func NewGetRecommendationsUseCase(offerRepo adapter.OfferRepository, transactionRepo adapter.TransactionRepository, maxOverlapSet int) *GetRecommendationsUseCase {
	return &GetRecommendationsUseCase{
		offerRepo:       offerRepo,
		transactionRepo: transactionRepo,
		maxOverlapSet:   maxOverlapSet,
	}
}

// Execute runs the engine over the person's current offers and ledger.
func (uc *GetRecommendationsUseCase) Execute(ctx context.Context, input GetRecommendationsInput) (*GetRecommendationsOutput, error) {
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

	// Offers that still have something to earn participate. Upcoming offers
	// are included so their windows feed the overlap search; the overlap
	// window never opens before today.
	var active []*ActiveOffer
	for _, offer := range offers {
		p := progress.Compute(offer, transactions, today)
		if (p.Status == entity.OfferStatusActive || p.Status == entity.OfferStatusUpcoming) && p.Incomplete() {
			active = append(active, &ActiveOffer{Offer: offer, Progress: p})
		}
	}

	overlaps := FindOverlaps(active, today, uc.maxOverlapSet)
	recommendations := Generate(active, overlaps, today)
	strategy := PlanMasterStrategy(active, overlaps, today)

	return &GetRecommendationsOutput{
		Recommendations: recommendations,
		Overlaps:        overlaps,
		MasterStrategy:  strategy,
		ActiveOffers:    len(active),
	}, nil
}
