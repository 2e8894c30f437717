package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// OfferType identifies how an offer's target and reward are interpreted.
type OfferType string

const (
	// OfferTypeSpending rewards reaching a total spending target.
	OfferTypeSpending OfferType = "spending"
	// OfferTypeTransactions rewards reaching a transaction-count target.
	OfferTypeTransactions OfferType = "transactions"
	// OfferTypePercentBack rewards a percentage of eligible spending.
	OfferTypePercentBack OfferType = "percent-back"
	// OfferTypeCombo requires both a spending and a transaction-count target.
	OfferTypeCombo OfferType = "combo"
)

// OfferStatus is an offer's position relative to a reference date.
type OfferStatus string

const (
	OfferStatusUpcoming OfferStatus = "upcoming"
	OfferStatusActive   OfferStatus = "active"
	OfferStatusExpired  OfferStatus = "expired"
)

// Tier is one threshold/reward step of a tiered offer. Thresholds are
// spending amounts for spending offers and transaction counts for
// transaction offers.
type Tier struct {
	Threshold decimal.Decimal
	Reward    decimal.Decimal
}

// Offer represents a time-boxed credit card promotion. Absent optional
// fields mean the corresponding rule simply does not apply.
type Offer struct {
	ID                uuid.UUID
	PersonID          *uuid.UUID // nil in single-user mode
	Name              string
	Type              OfferType
	StartDate         valueobject.Date
	EndDate           valueobject.Date
	SpendingTarget    *decimal.Decimal
	TransactionTarget *int
	MinTransaction    *decimal.Decimal
	Categories        []string // empty means every transaction qualifies
	Reward            decimal.Decimal
	BonusReward       *decimal.Decimal // extra reward when every month of a monthly offer completes
	Tiers             []Tier
	PercentBack       *decimal.Decimal // percentage, e.g. 5 for 5%
	MaxBack           *decimal.Decimal
	MinSpendThreshold *decimal.Decimal
	Description       string
	MonthlyTracking   bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // Soft-delete support
}

// NewOffer creates a new Offer entity with generated ID and timestamps.
func NewOffer(personID *uuid.UUID, name string, offerType OfferType, start, end valueobject.Date) *Offer {
	now := time.Now().UTC()

	return &Offer{
		ID:        uuid.New(),
		PersonID:  personID,
		Name:      name,
		Type:      offerType,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Covers reports whether a transaction counts toward this offer. This is the
// single eligibility check shared by progress computation, reverse matching
// and the recommendation engine:
//
//   - the transaction date falls within the offer window (inclusive),
//   - the transaction shares at least one category with the offer
//     (vacuously true when the offer restricts no categories),
//   - the amount meets the offer's per-transaction minimum, if any.
func (o *Offer) Covers(t *Transaction) bool {
	if t.Date.Before(o.StartDate) || t.Date.After(o.EndDate) {
		return false
	}
	if len(o.Categories) > 0 && !t.HasAnyCategory(o.Categories) {
		return false
	}
	if o.MinTransaction != nil && t.Amount.LessThan(*o.MinTransaction) {
		return false
	}
	return true
}

// Status derives the offer's lifecycle state from a reference date.
func (o *Offer) Status(today valueobject.Date) OfferStatus {
	switch {
	case today.Before(o.StartDate):
		return OfferStatusUpcoming
	case today.After(o.EndDate):
		return OfferStatusExpired
	default:
		return OfferStatusActive
	}
}

// Window returns the offer's inclusive date range.
func (o *Offer) Window() valueobject.DateRange {
	return valueobject.DateRange{Start: o.StartDate, End: o.EndDate}
}

// HasTiers reports whether the offer uses tiered rewards.
func (o *Offer) HasTiers() bool { return len(o.Tiers) > 0 }

// SortedTiers returns the tiers in ascending threshold order without
// mutating the offer. Storage order is not trusted.
func (o *Offer) SortedTiers() []Tier {
	tiers := make([]Tier, len(o.Tiers))
	copy(tiers, o.Tiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Threshold.LessThan(tiers[j].Threshold)
	})
	return tiers
}

// HighestTier returns the tier with the largest threshold, or nil when the
// offer has no tiers.
func (o *Offer) HighestTier() *Tier {
	if !o.HasTiers() {
		return nil
	}
	tiers := o.SortedTiers()
	return &tiers[len(tiers)-1]
}

// EffectiveMinTransaction returns the per-transaction minimum, or zero when
// the offer has none.
func (o *Offer) EffectiveMinTransaction() decimal.Decimal {
	if o.MinTransaction == nil {
		return decimal.Zero
	}
	return *o.MinTransaction
}

// CopyFor clones the offer for another person, with fresh identity and
// timestamps.
func (o *Offer) CopyFor(personID *uuid.UUID) *Offer {
	now := time.Now().UTC()

	clone := *o
	clone.ID = uuid.New()
	clone.PersonID = personID
	clone.Categories = append([]string(nil), o.Categories...)
	clone.Tiers = append([]Tier(nil), o.Tiers...)
	clone.CreatedAt = now
	clone.UpdatedAt = now
	clone.DeletedAt = nil
	return &clone
}
