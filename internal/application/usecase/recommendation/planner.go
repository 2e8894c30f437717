package recommendation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// PhaseUrgencyDays is how close a phase deadline must be to flag it urgent.
const PhaseUrgencyDays = 7

// Phase is one step of the master strategy: a window, the offers to work on
// during it, and the combined requirement that advances all of them.
type Phase struct {
	Offers               []*OfferNeed
	Window               valueobject.DateRange
	Categories           []string
	MinTransaction       decimal.Decimal
	CombinedSpending     decimal.Decimal
	CombinedTransactions int
	DaysRemaining        int
	Urgent               bool
	// Individual marks a phase covering a single offer that no overlap
	// could absorb.
	Individual bool
}

// MasterStrategy is a chronological plan covering every active offer once.
type MasterStrategy struct {
	Phases []*Phase
	// TotalPotentialReward is everything still earnable across the active
	// offers: per-month rewards for incomplete months plus completion
	// bonuses, full rewards for incomplete one-shot offers.
	TotalPotentialReward decimal.Decimal
}

// PlanMasterStrategy picks a near-minimal set of overlaps that covers every
// active offer, greedily preferring dense short windows: each overlap is
// scored offerCount × (365 / windowDays) and taken whenever it covers an
// offer nothing earlier covered. Offers left over become individual phases.
// Returns nil when there are no active offers.
func PlanMasterStrategy(active []*ActiveOffer, overlaps []*Overlap, today valueobject.Date) *MasterStrategy {
	if len(active) == 0 {
		return nil
	}

	scored := make([]*Overlap, len(overlaps))
	copy(scored, overlaps)
	sort.SliceStable(scored, func(i, j int) bool {
		return overlapScore(scored[i]).GreaterThan(overlapScore(scored[j]))
	})

	covered := make(map[uuid.UUID]bool, len(active))
	var phases []*Phase

	for _, overlap := range scored {
		coversNew := false
		for _, ao := range overlap.Offers {
			if !covered[ao.Offer.ID] {
				coversNew = true
				break
			}
		}
		if !coversNew {
			continue
		}

		phase := buildPhase(overlap.Offers, overlap.Window, overlap.Categories, overlap.MinTransaction, today)
		if phase == nil {
			continue
		}
		for _, ao := range overlap.Offers {
			covered[ao.Offer.ID] = true
		}
		phases = append(phases, phase)
	}

	for _, ao := range active {
		if covered[ao.Offer.ID] {
			continue
		}
		window := valueobject.DateRange{
			Start: valueobject.MaxDate(ao.Offer.StartDate, today),
			End:   ao.Offer.EndDate,
		}
		phase := buildPhase([]*ActiveOffer{ao}, window,
			append([]string(nil), ao.Offer.Categories...),
			ao.Offer.EffectiveMinTransaction(), today)
		if phase == nil {
			continue
		}
		phase.Individual = true
		covered[ao.Offer.ID] = true
		phases = append(phases, phase)
	}

	sort.SliceStable(phases, func(i, j int) bool {
		return phases[i].Window.End.Before(phases[j].Window.End)
	})

	total := decimal.Zero
	for _, ao := range active {
		total = total.Add(progress.RemainingPotential(ao.Offer, ao.Progress))
	}

	return &MasterStrategy{
		Phases:               phases,
		TotalPotentialReward: total,
	}
}

// overlapScore favors overlaps that advance many offers in little time: a
// 3-offer overlap open for a week beats a 2-offer overlap open all year.
func overlapScore(o *Overlap) decimal.Decimal {
	days := o.Window.Days()
	if days < 1 {
		days = 1
	}
	return decimal.NewFromInt(int64(o.OfferCount())).
		Mul(decimal.NewFromInt(365)).
		Div(decimal.NewFromInt(int64(days)))
}

// buildPhase computes the combined requirement for a group of offers inside
// a window, or nil when none of them needs anything there.
func buildPhase(offers []*ActiveOffer, window valueobject.DateRange, categories []string, minTransaction decimal.Decimal, today valueobject.Date) *Phase {
	if window.IsEmpty() {
		return nil
	}

	phase := &Phase{
		Window:           window,
		Categories:       categories,
		MinTransaction:   minTransaction,
		CombinedSpending: decimal.Zero,
		DaysRemaining:    daysRemaining(today, window.End),
	}
	phase.Urgent = phase.DaysRemaining <= PhaseUrgencyDays

	for _, ao := range offers {
		needs := remainingNeeds(ao, window, today)
		if !needs.Any() {
			continue
		}
		phase.Offers = append(phase.Offers, &OfferNeed{Offer: ao, Needs: needs})
		if needs.SpendingRemaining.GreaterThan(phase.CombinedSpending) {
			phase.CombinedSpending = needs.SpendingRemaining
		}
		if needs.TransactionsRemaining > phase.CombinedTransactions {
			phase.CombinedTransactions = needs.TransactionsRemaining
		}
	}

	if len(phase.Offers) == 0 {
		return nil
	}
	return phase
}
