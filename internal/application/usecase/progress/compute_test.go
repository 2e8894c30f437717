package progress

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

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

func txn(d valueobject.Date, amount string, categories ...string) *entity.Transaction {
	return &entity.Transaction{
		Date:       d,
		Amount:     dec(amount),
		Merchant:   "Test Merchant",
		Categories: categories,
	}
}

func spendingOffer(target string) *entity.Offer {
	return &entity.Offer{
		Name:           "Spend Offer",
		Type:           entity.OfferTypeSpending,
		StartDate:      date(2025, time.September, 1),
		EndDate:        date(2025, time.September, 30),
		SpendingTarget: decPtr(target),
		Reward:         dec("50"),
	}
}

func TestComputeSpendingTarget(t *testing.T) {
	today := date(2025, time.September, 20)

	t.Run("partial progress", func(t *testing.T) {
		p := Compute(spendingOffer("500"), []*entity.Transaction{
			txn(date(2025, time.September, 5), "120"),
			txn(date(2025, time.September, 10), "80"),
		}, today)

		if !p.TotalSpending.Equal(dec("200")) {
			t.Errorf("TotalSpending = %s, want 200", p.TotalSpending)
		}
		if p.TotalTransactions != 2 {
			t.Errorf("TotalTransactions = %d, want 2", p.TotalTransactions)
		}
		if p.Completed || !p.PartiallyCompleted {
			t.Errorf("expected partial, got completed=%v partial=%v", p.Completed, p.PartiallyCompleted)
		}
		if !p.Earned.IsZero() {
			t.Errorf("Earned = %s, want 0", p.Earned)
		}
		if p.PercentComplete != 40 {
			t.Errorf("PercentComplete = %v, want 40", p.PercentComplete)
		}
		if p.Status != entity.OfferStatusActive {
			t.Errorf("Status = %s, want active", p.Status)
		}
	})

	t.Run("target reached", func(t *testing.T) {
		p := Compute(spendingOffer("500"), []*entity.Transaction{
			txn(date(2025, time.September, 5), "300"),
			txn(date(2025, time.September, 10), "200"),
		}, today)

		if !p.Completed {
			t.Error("expected completed")
		}
		if !p.Earned.Equal(dec("50")) {
			t.Errorf("Earned = %s, want 50", p.Earned)
		}
	})

	t.Run("transactions outside window are ignored", func(t *testing.T) {
		p := Compute(spendingOffer("500"), []*entity.Transaction{
			txn(date(2025, time.August, 31), "400"),
			txn(date(2025, time.October, 1), "400"),
		}, today)

		if !p.TotalSpending.IsZero() || p.TotalTransactions != 0 {
			t.Errorf("expected zero progress, got %s / %d", p.TotalSpending, p.TotalTransactions)
		}
	})

	t.Run("no target means no progress", func(t *testing.T) {
		offer := spendingOffer("500")
		offer.SpendingTarget = nil

		p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 5), "300")}, today)
		if p.Completed {
			t.Error("offer without a target can never complete")
		}
		if !p.Earned.IsZero() {
			t.Errorf("Earned = %s, want 0", p.Earned)
		}
	})
}

func TestComputeTransactionTarget(t *testing.T) {
	offer := &entity.Offer{
		Name:              "Five Swipes",
		Type:              entity.OfferTypeTransactions,
		StartDate:         date(2025, time.September, 1),
		EndDate:           date(2025, time.September, 30),
		TransactionTarget: intPtr(5),
		MinTransaction:    decPtr("5"),
		Reward:            dec("20"),
	}
	today := date(2025, time.September, 20)

	ledger := []*entity.Transaction{
		txn(date(2025, time.September, 2), "10"),
		txn(date(2025, time.September, 3), "10"),
		txn(date(2025, time.September, 4), "4.99"), // below per-transaction minimum
		txn(date(2025, time.September, 5), "10"),
		txn(date(2025, time.September, 6), "10"),
	}

	p := Compute(offer, ledger, today)
	if p.TotalTransactions != 4 {
		t.Errorf("TotalTransactions = %d, want 4 (one below minimum)", p.TotalTransactions)
	}
	if p.Completed {
		t.Error("4 of 5 transactions should not complete")
	}

	ledger = append(ledger, txn(date(2025, time.September, 7), "10"))
	p = Compute(offer, ledger, today)
	if !p.Completed || !p.Earned.Equal(dec("20")) {
		t.Errorf("expected completed with 20 earned, got %v / %s", p.Completed, p.Earned)
	}
}

func TestComputeTiers(t *testing.T) {
	offer := &entity.Offer{
		Name:      "Tiered Spend",
		Type:      entity.OfferTypeSpending,
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.September, 30),
		Tiers: []entity.Tier{
			{Threshold: dec("100"), Reward: dec("10")},
			{Threshold: dec("200"), Reward: dec("25")},
			{Threshold: dec("300"), Reward: dec("45")},
		},
	}
	today := date(2025, time.September, 20)

	tests := []struct {
		name       string
		spending   string
		wantTier   string // threshold of expected tier, "" for none
		wantEarned string
		completed  bool
	}{
		{"below first tier", "50", "", "0", false},
		{"exactly first tier", "100", "100", "10", false},
		{"between tiers resolves highest met", "250", "200", "25", false},
		{"top tier completes", "300", "300", "45", true},
		{"beyond top tier", "900", "300", "45", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(offer, []*entity.Transaction{
				txn(date(2025, time.September, 10), tt.spending),
			}, today)

			if tt.wantTier == "" {
				if p.TierReached != nil {
					t.Errorf("TierReached = %v, want nil", p.TierReached)
				}
			} else if p.TierReached == nil || !p.TierReached.Threshold.Equal(dec(tt.wantTier)) {
				t.Errorf("TierReached = %v, want threshold %s", p.TierReached, tt.wantTier)
			}
			if !p.Earned.Equal(dec(tt.wantEarned)) {
				t.Errorf("Earned = %s, want %s", p.Earned, tt.wantEarned)
			}
			if p.Completed != tt.completed {
				t.Errorf("Completed = %v, want %v", p.Completed, tt.completed)
			}
		})
	}
}

func TestComputePercentBack(t *testing.T) {
	offer := &entity.Offer{
		Name:              "5% Back",
		Type:              entity.OfferTypePercentBack,
		StartDate:         date(2025, time.September, 1),
		EndDate:           date(2025, time.November, 30),
		PercentBack:       decPtr("5"),
		MaxBack:           decPtr("30"),
		MinSpendThreshold: decPtr("100"),
	}
	today := date(2025, time.September, 20)

	t.Run("below minimum spend threshold earns nothing", func(t *testing.T) {
		p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 5), "99")}, today)
		if !p.Earned.IsZero() {
			t.Errorf("Earned = %s, want 0 below the floor", p.Earned)
		}
		if !p.PartiallyCompleted {
			t.Error("spending below the floor is still partial progress")
		}
	})

	t.Run("threshold is a floor not a deduction", func(t *testing.T) {
		p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 5), "200")}, today)
		// 5% of the full 200, not of (200 - 100).
		if !p.Earned.Equal(dec("10")) {
			t.Errorf("Earned = %s, want 10", p.Earned)
		}
	})

	t.Run("earnings cap at maxBack", func(t *testing.T) {
		p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 5), "1000")}, today)
		if !p.Earned.Equal(dec("30")) {
			t.Errorf("Earned = %s, want capped 30", p.Earned)
		}
		if !p.Completed {
			t.Error("hitting the cap completes a percent-back offer")
		}
	})
}

func TestComputeMonthlyTracking(t *testing.T) {
	offer := &entity.Offer{
		Name:            "Monthly Spend",
		Type:            entity.OfferTypeSpending,
		StartDate:       date(2025, time.September, 1),
		EndDate:         date(2025, time.November, 30),
		SpendingTarget:  decPtr("100"),
		Reward:          dec("10"),
		BonusReward:     decPtr("25"),
		MonthlyTracking: true,
	}
	today := date(2025, time.October, 15)

	t.Run("partitions into calendar months", func(t *testing.T) {
		p := Compute(offer, nil, today)
		if len(p.Months) != 3 {
			t.Fatalf("expected 3 months, got %d", len(p.Months))
		}
		if p.Months[0].Label != "September 2025" || p.Months[2].Label != "November 2025" {
			t.Errorf("unexpected labels: %s .. %s", p.Months[0].Label, p.Months[2].Label)
		}
		if p.Months[1].Window.Start.String() != "2025-10-01" || p.Months[1].Window.End.String() != "2025-10-31" {
			t.Errorf("October window wrong: %s..%s", p.Months[1].Window.Start, p.Months[1].Window.End)
		}
	})

	t.Run("each month evaluated independently", func(t *testing.T) {
		p := Compute(offer, []*entity.Transaction{
			txn(date(2025, time.September, 10), "120"), // September complete
			txn(date(2025, time.October, 10), "60"),    // October partial
		}, today)

		if !p.Months[0].Completed {
			t.Error("September should be complete")
		}
		if p.Months[1].Completed || !p.Months[1].PartiallyCompleted {
			t.Error("October should be partial")
		}
		if p.CompletedMonths != 1 {
			t.Errorf("CompletedMonths = %d, want 1", p.CompletedMonths)
		}
		if !p.Earned.Equal(dec("10")) {
			t.Errorf("Earned = %s, want 10 (one month reward)", p.Earned)
		}
		if p.Completed {
			t.Error("offer with incomplete months is not complete")
		}
		if !p.Incomplete() {
			t.Error("Incomplete() should be true with months remaining")
		}
	})

	t.Run("bonus lands when every month completes", func(t *testing.T) {
		p := Compute(offer, []*entity.Transaction{
			txn(date(2025, time.September, 10), "120"),
			txn(date(2025, time.October, 10), "150"),
			txn(date(2025, time.November, 10), "100"),
		}, today)

		if !p.Completed || !p.BonusEarned {
			t.Errorf("expected full completion with bonus, got completed=%v bonus=%v", p.Completed, p.BonusEarned)
		}
		// 3 × 10 + 25 bonus.
		if !p.Earned.Equal(dec("55")) {
			t.Errorf("Earned = %s, want 55", p.Earned)
		}
		if p.Incomplete() {
			t.Error("fully earned offer should not be incomplete")
		}
	})
}

func TestComputeCombo(t *testing.T) {
	offer := &entity.Offer{
		Name:              "Spend And Swipe",
		Type:              entity.OfferTypeCombo,
		StartDate:         date(2025, time.September, 1),
		EndDate:           date(2025, time.September, 30),
		SpendingTarget:    decPtr("200"),
		TransactionTarget: intPtr(3),
		Reward:            dec("40"),
	}
	today := date(2025, time.September, 20)

	// Spending met, count not.
	p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 5), "250")}, today)
	if p.Completed {
		t.Error("combo needs both targets")
	}
	if !p.PartiallyCompleted {
		t.Error("one side met is partial progress")
	}

	p = Compute(offer, []*entity.Transaction{
		txn(date(2025, time.September, 5), "100"),
		txn(date(2025, time.September, 6), "100"),
		txn(date(2025, time.September, 7), "10"),
	}, today)
	if !p.Completed || !p.Earned.Equal(dec("40")) {
		t.Errorf("expected combo completion, got completed=%v earned=%s", p.Completed, p.Earned)
	}
}

func TestComputeIsDeterministicAndMonotone(t *testing.T) {
	offer := spendingOffer("500")
	today := date(2025, time.September, 20)
	ledger := []*entity.Transaction{
		txn(date(2025, time.September, 5), "120"),
		txn(date(2025, time.September, 10), "80"),
	}

	first := Compute(offer, ledger, today)
	second := Compute(offer, ledger, today)
	if !first.TotalSpending.Equal(second.TotalSpending) || first.TotalTransactions != second.TotalTransactions ||
		first.Completed != second.Completed || !first.Earned.Equal(second.Earned) {
		t.Error("identical inputs must produce identical progress")
	}

	// Adding a qualifying transaction never lowers totals.
	grown := Compute(offer, append(ledger, txn(date(2025, time.September, 12), "30")), today)
	if grown.TotalSpending.LessThan(first.TotalSpending) || grown.TotalTransactions < first.TotalTransactions {
		t.Error("adding a qualifying transaction lowered progress")
	}
}

func TestRemainingPotential(t *testing.T) {
	today := date(2025, time.October, 15)

	t.Run("monthly counts incomplete months plus bonus", func(t *testing.T) {
		offer := &entity.Offer{
			Type:            entity.OfferTypeSpending,
			StartDate:       date(2025, time.September, 1),
			EndDate:         date(2025, time.November, 30),
			SpendingTarget:  decPtr("100"),
			Reward:          dec("10"),
			BonusReward:     decPtr("25"),
			MonthlyTracking: true,
		}
		p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 10), "120")}, today)

		// Two incomplete months at 10 each plus the 25 bonus.
		if got := RemainingPotential(offer, p); !got.Equal(dec("45")) {
			t.Errorf("RemainingPotential = %s, want 45", got)
		}
	})

	t.Run("completed offer has nothing left", func(t *testing.T) {
		offer := spendingOffer("100")
		p := Compute(offer, []*entity.Transaction{txn(date(2025, time.September, 5), "150")}, today)
		if got := RemainingPotential(offer, p); !got.IsZero() {
			t.Errorf("RemainingPotential = %s, want 0", got)
		}
	})
}
