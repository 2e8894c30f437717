package recommendation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// Priority ranks how aggressively a recommendation should be followed.
type Priority string

const (
	// PriorityUltraHigh marks recommendations advancing three or more offers.
	PriorityUltraHigh Priority = "ultra-high"
	// PriorityHigh marks recommendations advancing exactly two offers.
	PriorityHigh Priority = "high"
	// PriorityMedium marks single-offer recommendations.
	PriorityMedium Priority = "medium"
)

// OfferNeed pairs one member offer with what it still requires inside the
// recommendation's window.
type OfferNeed struct {
	Offer *ActiveOffer
	Needs *Needs
}

// Savings quantifies the benefit of combining offers instead of satisfying
// each separately: the sum of separate requirements minus the shared one.
type Savings struct {
	DollarsSaved      decimal.Decimal
	TransactionsSaved int
}

// Recommendation tells the user where to direct spending: which offers,
// within what window, under which category and minimum-amount constraints,
// and how much is needed to advance all of them at once.
type Recommendation struct {
	Offers         []*OfferNeed
	Window         valueobject.DateRange
	Categories     []string // nil = any category qualifies
	MinTransaction decimal.Decimal
	// CombinedSpending is the shared spending that satisfies every member:
	// the largest individual remaining requirement.
	CombinedSpending     decimal.Decimal
	CombinedTransactions int
	Priority             Priority
	// Savings is nil for single-offer recommendations.
	Savings *Savings
}

// OfferCount returns how many offers the recommendation advances.
func (r *Recommendation) OfferCount() int { return len(r.Offers) }

// OfferIDs returns the member offer IDs.
func (r *Recommendation) OfferIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Offers))
	for i, on := range r.Offers {
		ids[i] = on.Offer.Offer.ID
	}
	return ids
}

// Generate turns overlaps into actionable recommendations. Every overlap
// where at least two offers still need something becomes a combined
// recommendation; every needy active offer also gets an individual fallback.
// Recommendations wholly contained in a larger one are pruned, so the result
// is an antichain under offer-set inclusion. Ordering is priority, then
// offer count, then dollars saved, all descending.
func Generate(active []*ActiveOffer, overlaps []*Overlap, today valueobject.Date) []*Recommendation {
	var recs []*Recommendation

	for _, overlap := range overlaps {
		if rec := fromOverlap(overlap, today); rec != nil {
			recs = append(recs, rec)
		}
	}

	for _, ao := range active {
		if rec := individual(ao, today); rec != nil {
			recs = append(recs, rec)
		}
	}

	recs = pruneSubsets(recs)

	sort.SliceStable(recs, func(i, j int) bool {
		if pi, pj := priorityRank(recs[i].Priority), priorityRank(recs[j].Priority); pi != pj {
			return pi < pj
		}
		if recs[i].OfferCount() != recs[j].OfferCount() {
			return recs[i].OfferCount() > recs[j].OfferCount()
		}
		return dollarsSaved(recs[i]).GreaterThan(dollarsSaved(recs[j]))
	})

	return recs
}

// fromOverlap builds a combined recommendation, or nil when fewer than two
// member offers still need anything.
func fromOverlap(overlap *Overlap, today valueobject.Date) *Recommendation {
	var members []*OfferNeed
	for _, ao := range overlap.Offers {
		needs := remainingNeeds(ao, overlap.Window, today)
		if needs.Any() {
			members = append(members, &OfferNeed{Offer: ao, Needs: needs})
		}
	}
	if len(members) < 2 {
		return nil
	}

	rec := &Recommendation{
		Offers:               members,
		Window:               overlap.Window,
		Categories:           overlap.Categories,
		MinTransaction:       overlap.MinTransaction,
		CombinedSpending:     decimal.Zero,
		CombinedTransactions: 0,
		Priority:             priorityFor(len(members)),
	}

	separateSpending := decimal.Zero
	separateTransactions := 0
	for _, m := range members {
		separateSpending = separateSpending.Add(m.Needs.SpendingRemaining)
		separateTransactions += m.Needs.TransactionsRemaining
		if m.Needs.SpendingRemaining.GreaterThan(rec.CombinedSpending) {
			rec.CombinedSpending = m.Needs.SpendingRemaining
		}
		if m.Needs.TransactionsRemaining > rec.CombinedTransactions {
			rec.CombinedTransactions = m.Needs.TransactionsRemaining
		}
	}

	rec.Savings = &Savings{
		DollarsSaved:      separateSpending.Sub(rec.CombinedSpending),
		TransactionsSaved: separateTransactions - rec.CombinedTransactions,
	}
	return rec
}

// individual builds a single-offer fallback recommendation, or nil when the
// offer needs nothing more.
func individual(ao *ActiveOffer, today valueobject.Date) *Recommendation {
	window := valueobject.DateRange{
		Start: valueobject.MaxDate(ao.Offer.StartDate, today),
		End:   ao.Offer.EndDate,
	}
	if window.IsEmpty() {
		return nil
	}

	needs := remainingNeeds(ao, window, today)
	if !needs.Any() {
		return nil
	}

	return &Recommendation{
		Offers:               []*OfferNeed{{Offer: ao, Needs: needs}},
		Window:               window,
		Categories:           append([]string(nil), ao.Offer.Categories...),
		MinTransaction:       ao.Offer.EffectiveMinTransaction(),
		CombinedSpending:     needs.SpendingRemaining,
		CombinedTransactions: needs.TransactionsRemaining,
		Priority:             PriorityMedium,
	}
}

// pruneSubsets drops any recommendation whose offer set is contained in a
// larger recommendation's set, and keeps only the first of any duplicates
// with identical sets. The survivors form an antichain.
func pruneSubsets(recs []*Recommendation) []*Recommendation {
	sets := make([]map[uuid.UUID]struct{}, len(recs))
	for i, rec := range recs {
		set := make(map[uuid.UUID]struct{}, rec.OfferCount())
		for _, id := range rec.OfferIDs() {
			set[id] = struct{}{}
		}
		sets[i] = set
	}

	var kept []*Recommendation
	for i, rec := range recs {
		subsumed := false
		for j := range recs {
			if j == i || !containsAll(sets[j], sets[i]) {
				continue
			}
			// Strict superset always wins; between equal sets the earlier
			// one survives.
			if len(sets[j]) > len(sets[i]) || (len(sets[j]) == len(sets[i]) && j < i) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, rec)
		}
	}
	return kept
}

func containsAll(super, sub map[uuid.UUID]struct{}) bool {
	for id := range sub {
		if _, ok := super[id]; !ok {
			return false
		}
	}
	return true
}

func priorityFor(offerCount int) Priority {
	switch {
	case offerCount > 2:
		return PriorityUltraHigh
	case offerCount == 2:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityUltraHigh:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

func dollarsSaved(r *Recommendation) decimal.Decimal {
	if r.Savings == nil {
		return decimal.Zero
	}
	return r.Savings.DollarsSaved
}
