package recommendation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(n int) *int { return &n }

func date(y int, m time.Month, d int) valueobject.Date {
	return valueobject.NewDate(y, m, d)
}

// activeOffer builds an offer with no progress yet, ready for the engine.
func activeOffer(name string, start, end valueobject.Date, opts func(*entity.Offer)) *ActiveOffer {
	offer := entity.NewOffer(nil, name, entity.OfferTypeSpending, start, end)
	target := dec("500")
	offer.SpendingTarget = &target
	offer.Reward = dec("50")
	if opts != nil {
		opts(offer)
	}
	return &ActiveOffer{
		Offer:    offer,
		Progress: progress.Compute(offer, nil, start),
	}
}

func findByCount(overlaps []*Overlap, count int) []*Overlap {
	var out []*Overlap
	for _, o := range overlaps {
		if o.OfferCount() == count {
			out = append(out, o)
		}
	}
	return out
}

func TestFindOverlapsWindows(t *testing.T) {
	today := date(2025, time.September, 10)

	a := activeOffer("A", date(2025, time.September, 1), date(2025, time.October, 15), nil)
	b := activeOffer("B", date(2025, time.September, 20), date(2025, time.November, 30), nil)
	c := activeOffer("C", date(2025, time.December, 1), date(2025, time.December, 31), nil)

	overlaps := FindOverlaps([]*ActiveOffer{a, b, c}, today, 0)

	// Only A+B intersect from today forward; C is disjoint from both.
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(overlaps))
	}
	o := overlaps[0]
	if o.Window.Start.String() != "2025-09-20" || o.Window.End.String() != "2025-10-15" {
		t.Errorf("window = %s..%s, want 2025-09-20..2025-10-15", o.Window.Start, o.Window.End)
	}
}

func TestFindOverlapsClampsToToday(t *testing.T) {
	today := date(2025, time.September, 10)

	a := activeOffer("A", date(2025, time.August, 1), date(2025, time.October, 15), nil)
	b := activeOffer("B", date(2025, time.August, 15), date(2025, time.September, 30), nil)

	overlaps := FindOverlaps([]*ActiveOffer{a, b}, today, 0)
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(overlaps))
	}
	// The shared past is gone; the window starts today.
	if !overlaps[0].Window.Start.Equal(today) {
		t.Errorf("window start = %s, want %s", overlaps[0].Window.Start, today)
	}
}

func TestFindOverlapsCategories(t *testing.T) {
	today := date(2025, time.September, 1)
	window := func(o *entity.Offer) {} // all offers share Sep 1-30 below

	t.Run("disjoint categories discard the subset", func(t *testing.T) {
		a := activeOffer("Dining", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
			o.Categories = []string{"dining"}
		})
		b := activeOffer("Travel", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
			o.Categories = []string{"travel"}
		})

		if overlaps := FindOverlaps([]*ActiveOffer{a, b}, today, 0); len(overlaps) != 0 {
			t.Errorf("expected no overlaps for disjoint categories, got %d", len(overlaps))
		}
	})

	t.Run("unrestricted offer imposes nothing", func(t *testing.T) {
		a := activeOffer("Dining", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
			o.Categories = []string{"dining"}
		})
		b := activeOffer("Anything", date(2025, time.September, 1), date(2025, time.September, 30), window)

		overlaps := FindOverlaps([]*ActiveOffer{a, b}, today, 0)
		if len(overlaps) != 1 {
			t.Fatalf("expected 1 overlap, got %d", len(overlaps))
		}
		if len(overlaps[0].Categories) != 1 || overlaps[0].Categories[0] != "dining" {
			t.Errorf("categories = %v, want [dining]", overlaps[0].Categories)
		}
	})

	t.Run("intersection across three offers", func(t *testing.T) {
		a := activeOffer("A", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
			o.Categories = []string{"dining", "groceries", "gas"}
		})
		b := activeOffer("B", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
			o.Categories = []string{"groceries", "gas"}
		})
		c := activeOffer("C", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
			o.Categories = []string{"gas", "travel"}
		})

		overlaps := FindOverlaps([]*ActiveOffer{a, b, c}, today, 0)
		triples := findByCount(overlaps, 3)
		if len(triples) != 1 {
			t.Fatalf("expected one 3-offer overlap, got %d", len(triples))
		}
		if len(triples[0].Categories) != 1 || triples[0].Categories[0] != "gas" {
			t.Errorf("triple categories = %v, want [gas]", triples[0].Categories)
		}
		// A+C share only gas, A+B share groceries+gas, B+C share gas.
		if pairs := findByCount(overlaps, 2); len(pairs) != 3 {
			t.Errorf("expected 3 pair overlaps, got %d", len(pairs))
		}
	})
}

func TestFindOverlapsMinTransaction(t *testing.T) {
	today := date(2025, time.September, 1)

	a := activeOffer("A", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
		o.MinTransaction = decPtr("10")
	})
	b := activeOffer("B", date(2025, time.September, 1), date(2025, time.September, 30), func(o *entity.Offer) {
		o.MinTransaction = decPtr("25")
	})

	overlaps := FindOverlaps([]*ActiveOffer{a, b}, today, 0)
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(overlaps))
	}
	// The strictest minimum wins: a purchase must satisfy every offer.
	if !overlaps[0].MinTransaction.Equal(dec("25")) {
		t.Errorf("MinTransaction = %s, want 25", overlaps[0].MinTransaction)
	}
}

func TestFindOverlapsOrdering(t *testing.T) {
	today := date(2025, time.September, 1)
	end := date(2025, time.September, 30)

	a := activeOffer("A", today, end, nil)
	b := activeOffer("B", today, end, nil)
	c := activeOffer("C", today, end, nil)

	overlaps := FindOverlaps([]*ActiveOffer{a, b, c}, today, 0)
	// 1 triple + 3 pairs, largest first.
	if len(overlaps) != 4 {
		t.Fatalf("expected 4 overlaps, got %d", len(overlaps))
	}
	if overlaps[0].OfferCount() != 3 {
		t.Errorf("first overlap has %d offers, want 3", overlaps[0].OfferCount())
	}
	for _, o := range overlaps[1:] {
		if o.OfferCount() != 2 {
			t.Errorf("expected remaining overlaps to be pairs, got %d", o.OfferCount())
		}
	}
}

func TestCombinations(t *testing.T) {
	var got [][]int
	combinations(4, 2, func(idx []int) {
		got = append(got, append([]int(nil), idx...))
	})

	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("expected %d combinations, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Errorf("combination %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindOverlapsCap(t *testing.T) {
	today := date(2025, time.September, 1)

	var active []*ActiveOffer
	for i := 0; i < 5; i++ {
		end := date(2025, time.September, 10+i)
		active = append(active, activeOffer("O", today, end, nil))
	}

	// With the cap at 3 only the three soonest-ending offers participate:
	// C(3,2) + C(3,3) = 4 subsets.
	overlaps := FindOverlaps(active, today, 3)
	if len(overlaps) != 4 {
		t.Errorf("expected 4 overlaps under cap, got %d", len(overlaps))
	}
	for _, o := range overlaps {
		for _, ao := range o.Offers {
			if ao.Offer.EndDate.After(date(2025, time.September, 12)) {
				t.Errorf("offer ending %s should have been dropped by the cap", ao.Offer.EndDate)
			}
		}
	}
}
