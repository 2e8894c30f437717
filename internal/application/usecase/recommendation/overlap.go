// Package recommendation finds overlapping offer windows and turns them into
// combined spending recommendations and a long-range strategy. Like the
// progress package, everything here is pure computation over a snapshot of
// offers, ledger and reference date.
package recommendation

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// MaxOverlapOffers bounds the subset enumeration, which is exponential in
// the number of active offers. Past this many, the soonest-ending offers are
// kept and the rest are left to individual recommendations.
const MaxOverlapOffers = 15

// ActiveOffer pairs an offer with its computed progress for one engine run.
type ActiveOffer struct {
	Offer    *entity.Offer
	Progress *progress.Progress
}

// Overlap is a set of two or more offers that can be advanced by the same
// purchases: their windows intersect from today forward, and a transaction
// satisfying the combined constraints counts toward all of them.
type Overlap struct {
	Offers []*ActiveOffer
	// Window is the shared span: the latest start (never before today)
	// through the earliest end.
	Window valueobject.DateRange
	// Categories a shared purchase must hit. Nil means unrestricted: every
	// member offer accepts any category.
	Categories []string
	// MinTransaction is the strictest per-transaction minimum of the set.
	MinTransaction decimal.Decimal
}

// OfferCount returns how many offers share the overlap.
func (o *Overlap) OfferCount() int { return len(o.Offers) }

// OfferIDs returns the member offer IDs in subset order.
func (o *Overlap) OfferIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Offers))
	for i, ao := range o.Offers {
		ids[i] = ao.Offer.ID
	}
	return ids
}

// FindOverlaps enumerates every subset of two or more active offers whose
// windows still intersect from today forward and whose category
// restrictions are mutually satisfiable. Results are ordered largest subset
// first, ties by earliest deadline. maxOffers bounds the search;
// non-positive values fall back to MaxOverlapOffers.
func FindOverlaps(active []*ActiveOffer, today valueobject.Date, maxOffers int) []*Overlap {
	if maxOffers <= 0 {
		maxOffers = MaxOverlapOffers
	}
	if len(active) > maxOffers {
		active = capBySoonestEnd(active, maxOffers)
	}

	var overlaps []*Overlap
	n := len(active)
	for size := 2; size <= n; size++ {
		combinations(n, size, func(idx []int) {
			subset := make([]*ActiveOffer, size)
			for i, j := range idx {
				subset[i] = active[j]
			}
			if overlap := buildOverlap(subset, today); overlap != nil {
				overlaps = append(overlaps, overlap)
			}
		})
	}

	sort.SliceStable(overlaps, func(i, j int) bool {
		if len(overlaps[i].Offers) != len(overlaps[j].Offers) {
			return len(overlaps[i].Offers) > len(overlaps[j].Offers)
		}
		return overlaps[i].Window.End.Before(overlaps[j].Window.End)
	})
	return overlaps
}

// buildOverlap checks one subset for compatibility. It returns nil when the
// windows no longer intersect or the category restrictions are disjoint.
func buildOverlap(subset []*ActiveOffer, today valueobject.Date) *Overlap {
	window := valueobject.DateRange{Start: today, End: subset[0].Offer.EndDate}
	for _, ao := range subset {
		window = window.Intersect(ao.Offer.Window())
	}
	if window.IsEmpty() {
		return nil
	}

	categories, compatible := intersectCategories(subset)
	if !compatible {
		return nil
	}

	minTransaction := decimal.Zero
	for _, ao := range subset {
		if m := ao.Offer.EffectiveMinTransaction(); m.GreaterThan(minTransaction) {
			minTransaction = m
		}
	}

	return &Overlap{
		Offers:         subset,
		Window:         window,
		Categories:     categories,
		MinTransaction: minTransaction,
	}
}

// intersectCategories folds the subset's category restrictions together.
// Offers with no categories accept anything, so they impose nothing. The
// second return value is false when two restricted offers share no category,
// meaning no single purchase can count for both.
func intersectCategories(subset []*ActiveOffer) ([]string, bool) {
	var shared []string
	restricted := false

	for _, ao := range subset {
		if len(ao.Offer.Categories) == 0 {
			continue
		}
		if !restricted {
			restricted = true
			shared = append([]string(nil), ao.Offer.Categories...)
			continue
		}
		shared = intersect(shared, ao.Offer.Categories)
		if len(shared) == 0 {
			return nil, false
		}
	}

	return shared, true
}

func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

// combinations yields every k-subset of [0, n) as an index slice. The slice
// is reused between calls; copy it if it must outlive the callback.
func combinations(n, k int, yield func(idx []int)) {
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		yield(idx)

		// Advance the rightmost index that can still move.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// capBySoonestEnd keeps the offers closest to their deadlines, where
// combined planning matters most.
func capBySoonestEnd(active []*ActiveOffer, maxOffers int) []*ActiveOffer {
	capped := make([]*ActiveOffer, len(active))
	copy(capped, active)
	sort.SliceStable(capped, func(i, j int) bool {
		return capped[i].Offer.EndDate.Before(capped[j].Offer.EndDate)
	})
	return capped[:maxOffers]
}
