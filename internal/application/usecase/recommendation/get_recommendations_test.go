package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/integration/persistence"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
)

func testRepos(t *testing.T) (adapter.OfferRepository, adapter.TransactionRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&model.PersonModel{}, &model.OfferModel{}, &model.TransactionModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return persistence.NewOfferRepository(db), persistence.NewTransactionRepository(db)
}

func TestGetRecommendationsIncludesUpcomingOffers(t *testing.T) {
	offerRepo, transactionRepo := testRepos(t)
	ctx := context.Background()

	running := entity.NewOffer(nil, "Running", entity.OfferTypeSpending,
		date(2025, time.September, 1), date(2025, time.September, 30))
	running.SpendingTarget = decPtr("500")
	running.Reward = dec("50")

	upcoming := entity.NewOffer(nil, "Starts Later", entity.OfferTypeSpending,
		date(2025, time.September, 20), date(2025, time.October, 31))
	upcoming.SpendingTarget = decPtr("300")
	upcoming.Reward = dec("30")

	for _, o := range []*entity.Offer{running, upcoming} {
		if err := offerRepo.Create(ctx, o); err != nil {
			t.Fatalf("create offer: %v", err)
		}
	}

	uc := NewGetRecommendationsUseCase(offerRepo, transactionRepo, 0)
	out, err := uc.Execute(ctx, GetRecommendationsInput{Today: date(2025, time.September, 15)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// The not-yet-started offer still participates so its window can be
	// planned against; here the pair shares 2025-09-20..2025-09-30.
	if out.ActiveOffers != 2 {
		t.Fatalf("ActiveOffers = %d, want 2", out.ActiveOffers)
	}
	if len(out.Overlaps) != 1 || out.Overlaps[0].OfferCount() != 2 {
		t.Fatalf("expected the pair overlap, got %d overlaps", len(out.Overlaps))
	}
	window := out.Overlaps[0].Window
	if window.Start != date(2025, time.September, 20) || window.End != date(2025, time.September, 30) {
		t.Errorf("overlap window = %s..%s, want 2025-09-20..2025-09-30", window.Start, window.End)
	}
	if len(out.Recommendations) != 1 || out.Recommendations[0].OfferCount() != 2 {
		t.Errorf("expected one combined recommendation, got %d", len(out.Recommendations))
	}
}

func TestGetRecommendationsSkipsExpiredOffers(t *testing.T) {
	offerRepo, transactionRepo := testRepos(t)
	ctx := context.Background()

	expired := entity.NewOffer(nil, "Over", entity.OfferTypeSpending,
		date(2025, time.August, 1), date(2025, time.August, 31))
	expired.SpendingTarget = decPtr("500")
	expired.Reward = dec("50")
	if err := offerRepo.Create(ctx, expired); err != nil {
		t.Fatalf("create offer: %v", err)
	}

	uc := NewGetRecommendationsUseCase(offerRepo, transactionRepo, 0)
	out, err := uc.Execute(ctx, GetRecommendationsInput{Today: date(2025, time.September, 15)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.ActiveOffers != 0 || len(out.Recommendations) != 0 {
		t.Errorf("expired offer should not participate, got %d active / %d recommendations",
			out.ActiveOffers, len(out.Recommendations))
	}
}
