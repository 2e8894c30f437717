package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
	"github.com/offer-tracker/backend/internal/integration/persistence"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
)

func testWorker(t *testing.T) (*Worker, *MockEmailSender, adapter.OfferRepository, adapter.TransactionRepository) {
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

	offerRepo := persistence.NewOfferRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	sender := &MockEmailSender{}
	worker := NewWorker(offerRepo, transactionRepo, sender, DefaultWorkerConfig())
	return worker, sender, offerRepo, transactionRepo
}

func dateFromNow(days int) valueobject.Date {
	return valueobject.DateOf(time.Now().AddDate(0, 0, days))
}

func TestWorkerSendsDigestForExpiringOffers(t *testing.T) {
	worker, sender, offerRepo, _ := testWorker(t)
	ctx := context.Background()

	expiring := entity.NewOffer(nil, "Ends Soon", entity.OfferTypeSpending, dateFromNow(-30), dateFromNow(3))
	target := decimal.NewFromInt(500)
	expiring.SpendingTarget = &target

	distant := entity.NewOffer(nil, "Ends Later", entity.OfferTypeSpending, dateFromNow(-30), dateFromNow(60))
	distant.SpendingTarget = &target

	for _, o := range []*entity.Offer{expiring, distant} {
		if err := offerRepo.Create(ctx, o); err != nil {
			t.Fatalf("create offer: %v", err)
		}
	}

	worker.ProcessNow(ctx)

	if len(sender.Sent) != 1 {
		t.Fatalf("expected 1 digest, got %d", len(sender.Sent))
	}
	if !strings.Contains(sender.Sent[0].HTML, "Ends Soon") {
		t.Errorf("digest missing expiring offer: %s", sender.Sent[0].HTML)
	}
	if strings.Contains(sender.Sent[0].HTML, "Ends Later") {
		t.Errorf("digest should not include distant offer: %s", sender.Sent[0].HTML)
	}
}

func TestWorkerSkipsCompletedOffers(t *testing.T) {
	worker, sender, offerRepo, transactionRepo := testWorker(t)
	ctx := context.Background()

	offer := entity.NewOffer(nil, "Done Deal", entity.OfferTypeSpending, dateFromNow(-10), dateFromNow(2))
	target := decimal.NewFromInt(100)
	offer.SpendingTarget = &target
	if err := offerRepo.Create(ctx, offer); err != nil {
		t.Fatalf("create offer: %v", err)
	}

	tx := entity.NewTransaction(nil, dateFromNow(-1), decimal.NewFromInt(150), "Store", nil, "")
	if err := transactionRepo.Create(ctx, tx); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	worker.ProcessNow(ctx)

	if len(sender.Sent) != 0 {
		t.Errorf("expected no digest for a completed offer, got %d", len(sender.Sent))
	}
}

func TestWorkerNotifiesEachOfferOnce(t *testing.T) {
	worker, sender, offerRepo, _ := testWorker(t)
	ctx := context.Background()

	offer := entity.NewOffer(nil, "Ends Soon", entity.OfferTypeSpending, dateFromNow(-30), dateFromNow(3))
	target := decimal.NewFromInt(500)
	offer.SpendingTarget = &target
	if err := offerRepo.Create(ctx, offer); err != nil {
		t.Fatalf("create offer: %v", err)
	}

	worker.ProcessNow(ctx)
	worker.ProcessNow(ctx)

	if len(sender.Sent) != 1 {
		t.Errorf("expected a single digest across repeated scans, got %d", len(sender.Sent))
	}
}
