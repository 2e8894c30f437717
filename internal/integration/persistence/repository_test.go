package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
)

func testDB(t *testing.T) *gorm.DB {
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
	return db
}

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

func TestOfferRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	offer := entity.NewOffer(nil, "Tiered Dining", entity.OfferTypeSpending,
		valueobject.NewDate(2025, time.September, 1), valueobject.NewDate(2025, time.November, 30))
	offer.Categories = []string{"dining", "groceries"}
	offer.Tiers = []entity.Tier{
		{Threshold: dec("100"), Reward: dec("10")},
		{Threshold: dec("300"), Reward: dec("45")},
	}
	offer.MinTransaction = decPtr("10")
	offer.MonthlyTracking = true

	if err := repo.Create(ctx, offer); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := repo.GetByID(ctx, offer.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if loaded.Name != offer.Name || loaded.Type != offer.Type {
		t.Errorf("basic fields lost: %+v", loaded)
	}
	if !loaded.StartDate.Equal(offer.StartDate) || !loaded.EndDate.Equal(offer.EndDate) {
		t.Errorf("dates shifted: %s..%s", loaded.StartDate, loaded.EndDate)
	}
	if len(loaded.Categories) != 2 || loaded.Categories[0] != "dining" {
		t.Errorf("categories lost: %v", loaded.Categories)
	}
	if len(loaded.Tiers) != 2 || !loaded.Tiers[1].Reward.Equal(dec("45")) {
		t.Errorf("tiers lost: %v", loaded.Tiers)
	}
	if loaded.MinTransaction == nil || !loaded.MinTransaction.Equal(dec("10")) {
		t.Errorf("min transaction lost: %v", loaded.MinTransaction)
	}
	if !loaded.MonthlyTracking {
		t.Error("monthly tracking flag lost")
	}
}

func TestOfferRepositoryListScopedByPerson(t *testing.T) {
	db := testDB(t)
	offerRepo := NewOfferRepository(db)
	personRepo := NewPersonRepository(db)
	ctx := context.Background()

	alice := entity.NewPerson("Alice")
	if err := personRepo.Create(ctx, alice); err != nil {
		t.Fatalf("create person: %v", err)
	}

	mine := entity.NewOffer(&alice.ID, "Mine", entity.OfferTypeSpending,
		valueobject.NewDate(2025, time.September, 1), valueobject.NewDate(2025, time.September, 30))
	other := entity.NewOffer(nil, "Shared", entity.OfferTypeSpending,
		valueobject.NewDate(2025, time.August, 1), valueobject.NewDate(2025, time.August, 31))
	for _, o := range []*entity.Offer{mine, other} {
		if err := offerRepo.Create(ctx, o); err != nil {
			t.Fatalf("create offer: %v", err)
		}
	}

	all, err := offerRepo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 offers, got %d", len(all))
	}
	// Ordered by start date ascending.
	if all[0].Name != "Shared" {
		t.Errorf("expected start-date ordering, got %s first", all[0].Name)
	}

	scoped, err := offerRepo.List(ctx, &alice.ID)
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Name != "Mine" {
		t.Errorf("person scope broken: %v", scoped)
	}
}

func TestTransactionRepositoryPaginationAndMerchants(t *testing.T) {
	db := testDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	dates := []valueobject.Date{
		valueobject.NewDate(2025, time.September, 1),
		valueobject.NewDate(2025, time.September, 2),
		valueobject.NewDate(2025, time.September, 3),
	}
	merchants := []string{"Grocer", "Cafe", "Grocer"}
	for i, d := range dates {
		tx := entity.NewTransaction(nil, d, dec("25"), merchants[i], []string{"groceries"}, "")
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, total, err := repo.List(ctx, nil, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Errorf("expected total 3 page 2, got %d/%d", total, len(page))
	}
	// Newest first.
	if !page[0].Date.Equal(dates[2]) {
		t.Errorf("expected newest first, got %s", page[0].Date)
	}

	all, err := repo.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 || !all[0].Date.Equal(dates[0]) {
		t.Errorf("expected full ledger oldest first, got %d rows", len(all))
	}

	names, err := repo.Merchants(ctx, nil)
	if err != nil {
		t.Fatalf("merchants: %v", err)
	}
	if len(names) != 2 || names[0] != "Cafe" || names[1] != "Grocer" {
		t.Errorf("merchants = %v, want [Cafe Grocer]", names)
	}

	categories, err := repo.MerchantCategories(ctx, "Grocer")
	if err != nil {
		t.Fatalf("merchant categories: %v", err)
	}
	if len(categories) != 1 || categories[0] != "groceries" {
		t.Errorf("categories = %v, want [groceries]", categories)
	}
}

func TestPersonRepositoryCascadeDelete(t *testing.T) {
	db := testDB(t)
	personRepo := NewPersonRepository(db)
	offerRepo := NewOfferRepository(db)
	transactionRepo := NewTransactionRepository(db)
	ctx := context.Background()

	bob := entity.NewPerson("Bob")
	if err := personRepo.Create(ctx, bob); err != nil {
		t.Fatalf("create person: %v", err)
	}

	offer := entity.NewOffer(&bob.ID, "Bob's Offer", entity.OfferTypeSpending,
		valueobject.NewDate(2025, time.September, 1), valueobject.NewDate(2025, time.September, 30))
	if err := offerRepo.Create(ctx, offer); err != nil {
		t.Fatalf("create offer: %v", err)
	}
	tx := entity.NewTransaction(&bob.ID, valueobject.NewDate(2025, time.September, 5), dec("50"), "Store", nil, "")
	if err := transactionRepo.Create(ctx, tx); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := personRepo.Delete(ctx, bob.ID); err != nil {
		t.Fatalf("delete person: %v", err)
	}

	if _, err := personRepo.GetByID(ctx, bob.ID); err == nil {
		t.Error("expected person to be gone")
	}
	if _, err := offerRepo.GetByID(ctx, offer.ID); err == nil {
		t.Error("expected offer to be cascade-deleted")
	}
	if _, err := transactionRepo.GetByID(ctx, tx.ID); err == nil {
		t.Error("expected transaction to be cascade-deleted")
	}
}
