package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/application/usecase/progress"
	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// Worker periodically checks for active offers nearing their deadline and
// mails a digest of the ones still incomplete. Each offer is reminded about
// once per process lifetime.
type Worker struct {
	offerRepo       adapter.OfferRepository
	transactionRepo adapter.TransactionRepository
	sender          adapter.EmailSender
	pollInterval    time.Duration
	expiryWindow    time.Duration
	notified        map[uuid.UUID]bool
}

// WorkerConfig holds configuration for the digest worker.
type WorkerConfig struct {
	PollInterval time.Duration
	ExpiryWindow time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 12 * time.Hour,
		ExpiryWindow: 7 * 24 * time.Hour,
	}
}

// NewWorker creates a new digest worker.
func NewWorker(offerRepo adapter.OfferRepository, transactionRepo adapter.TransactionRepository, sender adapter.EmailSender, config WorkerConfig) *Worker {
	return &Worker{
		offerRepo:       offerRepo,
		transactionRepo: transactionRepo,
		sender:          sender,
		pollInterval:    config.PollInterval,
		expiryWindow:    config.ExpiryWindow,
		notified:        make(map[uuid.UUID]bool),
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Expiry digest worker started",
		"poll_interval", w.pollInterval,
		"expiry_window", w.expiryWindow,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Expiry digest worker shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce scans all offers and sends at most one digest email.
func (w *Worker) runOnce(ctx context.Context) {
	today := valueobject.DateOf(time.Now())

	offers, err := w.offerRepo.List(ctx, nil)
	if err != nil {
		slog.Error("Failed to load offers for expiry digest", "error", err)
		return
	}
	transactions, err := w.transactionRepo.ListAll(ctx, nil)
	if err != nil {
		slog.Error("Failed to load transactions for expiry digest", "error", err)
		return
	}

	expiring := w.collectExpiring(offers, transactions, today)
	if len(expiring) == 0 {
		return
	}

	subject := fmt.Sprintf("%d offer(s) expiring soon", len(expiring))
	if err := w.sender.Send(ctx, subject, digestHTML(expiring, today)); err != nil {
		slog.Error("Failed to send expiry digest", "error", err)
		return
	}
	for _, item := range expiring {
		w.notified[item.Offer.ID] = true
	}
	slog.Info("Expiry digest sent", "offers", len(expiring))
}

// expiringOffer is one digest line item.
type expiringOffer struct {
	Offer    *entity.Offer
	Progress *progress.Progress
}

func (w *Worker) collectExpiring(offers []*entity.Offer, transactions []*entity.Transaction, today valueobject.Date) []*expiringOffer {
	windowDays := int(w.expiryWindow.Hours() / 24)

	var expiring []*expiringOffer
	for _, offer := range offers {
		if w.notified[offer.ID] {
			continue
		}
		p := progress.Compute(offer, transactions, today)
		if p.Status != entity.OfferStatusActive || !p.Incomplete() {
			continue
		}
		if today.DaysUntil(offer.EndDate) > windowDays {
			continue
		}
		expiring = append(expiring, &expiringOffer{Offer: offer, Progress: p})
	}
	return expiring
}

func digestHTML(expiring []*expiringOffer, today valueobject.Date) string {
	var b strings.Builder
	b.WriteString("<h2>Offers expiring soon</h2><ul>")
	for _, item := range expiring {
		days := today.DaysUntil(item.Offer.EndDate)
		fmt.Fprintf(&b, "<li><strong>%s</strong> ends %s (%d day(s) left), %.0f%% complete, $%s earned so far</li>",
			item.Offer.Name,
			item.Offer.EndDate,
			days,
			item.Progress.PercentComplete,
			item.Progress.Earned.StringFixed(2),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}

// ProcessNow runs one scan immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.runOnce(ctx)
}
