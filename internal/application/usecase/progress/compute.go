// Package progress computes how far along each offer is, given the current
// spending ledger. All computation is pure: the ledger and the reference
// date come in as arguments and nothing is cached or persisted.
package progress

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// MonthProgress is the state of one calendar month of a monthly-tracking
// offer. The window is clipped to the offer's date range, so the first and
// last months may be partial.
type MonthProgress struct {
	Window             valueobject.DateRange
	Label              string // e.g. "September 2025"
	Spending           decimal.Decimal
	Transactions       int
	Completed          bool
	PartiallyCompleted bool
	TierReached        *entity.Tier
	Earned             decimal.Decimal
}

// Progress is the full computed state of one offer against the ledger.
type Progress struct {
	OfferID            uuid.UUID
	Status             entity.OfferStatus
	TotalSpending      decimal.Decimal
	TotalTransactions  int
	Completed          bool
	PartiallyCompleted bool
	PercentComplete    float64 // 0..100 toward the target or highest tier
	TierReached        *entity.Tier
	Earned             decimal.Decimal
	BonusEarned        bool
	Months             []MonthProgress // nil unless the offer tracks monthly
	CompletedMonths    int
	Qualifying         []*entity.Transaction
}

// Incomplete reports whether the offer still has something left to earn.
// For monthly offers that means at least one month is not yet complete.
func (p *Progress) Incomplete() bool {
	if len(p.Months) > 0 {
		return p.CompletedMonths < len(p.Months)
	}
	return !p.Completed
}

// Compute evaluates an offer against the ledger as of the given date. The
// same transactions may be passed for every offer; only those the offer
// covers are counted. Computing twice over the same inputs always yields the
// same result, and adding a qualifying transaction never lowers any total.
func Compute(offer *entity.Offer, transactions []*entity.Transaction, today valueobject.Date) *Progress {
	var qualifying []*entity.Transaction
	totalSpending := decimal.Zero
	for _, tx := range transactions {
		if offer.Covers(tx) {
			qualifying = append(qualifying, tx)
			totalSpending = totalSpending.Add(tx.Amount)
		}
	}

	p := &Progress{
		OfferID:           offer.ID,
		Status:            offer.Status(today),
		TotalSpending:     totalSpending,
		TotalTransactions: len(qualifying),
		Earned:            decimal.Zero,
		Qualifying:        qualifying,
	}

	if offer.MonthlyTracking {
		computeMonthly(offer, qualifying, p)
	} else {
		state := evaluatePeriod(offer, totalSpending, len(qualifying))
		p.Completed = state.completed
		p.PartiallyCompleted = state.partial
		p.TierReached = state.tier
		p.Earned = state.earned
	}

	p.PercentComplete = percentComplete(offer, totalSpending, len(qualifying))
	return p
}

func computeMonthly(offer *entity.Offer, qualifying []*entity.Transaction, p *Progress) {
	windows := valueobject.MonthWindows(offer.StartDate, offer.EndDate)

	for _, window := range windows {
		month := MonthProgress{
			Window:   window,
			Label:    window.Start.MonthLabel(),
			Spending: decimal.Zero,
		}
		for _, tx := range qualifying {
			if window.Contains(tx.Date) {
				month.Spending = month.Spending.Add(tx.Amount)
				month.Transactions++
			}
		}

		state := evaluatePeriod(offer, month.Spending, month.Transactions)
		month.Completed = state.completed
		month.PartiallyCompleted = state.partial
		month.TierReached = state.tier
		month.Earned = state.earned

		if month.Completed {
			p.CompletedMonths++
		}
		if month.PartiallyCompleted {
			p.PartiallyCompleted = true
		}
		p.Earned = p.Earned.Add(month.Earned)
		p.Months = append(p.Months, month)
	}

	p.Completed = len(p.Months) > 0 && p.CompletedMonths == len(p.Months)
	if p.Completed && offer.BonusReward != nil {
		p.Earned = p.Earned.Add(*offer.BonusReward)
		p.BonusEarned = true
	}
	if p.CompletedMonths > 0 && !p.Completed {
		p.PartiallyCompleted = true
	}
}

// periodState is the outcome of evaluating one tracking period (the whole
// offer window, or a single month for monthly offers).
type periodState struct {
	completed bool
	partial   bool
	tier      *entity.Tier
	earned    decimal.Decimal
}

func evaluatePeriod(offer *entity.Offer, spending decimal.Decimal, count int) periodState {
	if offer.HasTiers() {
		return evaluateTiers(offer, spending, count)
	}

	switch offer.Type {
	case entity.OfferTypeSpending:
		// An absent target means nothing can be earned.
		if offer.SpendingTarget == nil {
			return periodState{partial: spending.IsPositive(), earned: decimal.Zero}
		}
		return evaluateTarget(offer, spendingMet(offer, spending), spending.IsPositive())
	case entity.OfferTypeTransactions:
		if offer.TransactionTarget == nil {
			return periodState{partial: count > 0, earned: decimal.Zero}
		}
		return evaluateTarget(offer, countMet(offer, count), count > 0)
	case entity.OfferTypeCombo:
		// Both targets must be met; an absent target imposes no requirement.
		met := spendingMet(offer, spending) && countMet(offer, count)
		hasTarget := offer.SpendingTarget != nil || offer.TransactionTarget != nil
		state := evaluateTarget(offer, met && hasTarget, spending.IsPositive() || count > 0)
		return state
	case entity.OfferTypePercentBack:
		return evaluatePercentBack(offer, spending)
	default:
		return periodState{earned: decimal.Zero}
	}
}

// evaluateTiers resolves the highest tier whose threshold has been met.
// Thresholds are spending amounts, or transaction counts for
// transaction-type offers.
func evaluateTiers(offer *entity.Offer, spending decimal.Decimal, count int) periodState {
	value := spending
	if offer.Type == entity.OfferTypeTransactions {
		value = decimal.NewFromInt(int64(count))
	}

	state := periodState{earned: decimal.Zero}
	tiers := offer.SortedTiers()
	for i := range tiers {
		if value.GreaterThanOrEqual(tiers[i].Threshold) {
			state.tier = &tiers[i]
			state.earned = tiers[i].Reward
		}
	}

	if state.tier != nil {
		state.completed = state.tier.Threshold.Equal(tiers[len(tiers)-1].Threshold)
		state.partial = !state.completed
	} else if value.IsPositive() {
		state.partial = true
	}
	return state
}

func evaluateTarget(offer *entity.Offer, met, anyProgress bool) periodState {
	state := periodState{earned: decimal.Zero}
	if met {
		state.completed = true
		state.earned = offer.Reward
		return state
	}
	state.partial = anyProgress
	return state
}

// evaluatePercentBack computes rate-based cash back: the rate applied to all
// eligible spending, capped at maxBack. Below the minimum spend threshold
// nothing is earned at all; the threshold is a floor, not a deduction.
func evaluatePercentBack(offer *entity.Offer, spending decimal.Decimal) periodState {
	state := periodState{earned: decimal.Zero}
	if offer.PercentBack == nil {
		return state
	}
	if offer.MinSpendThreshold != nil && spending.LessThan(*offer.MinSpendThreshold) {
		state.partial = spending.IsPositive()
		return state
	}

	earned := spending.Mul(*offer.PercentBack).Div(decimal.NewFromInt(100))
	if offer.MaxBack != nil && earned.GreaterThan(*offer.MaxBack) {
		earned = *offer.MaxBack
	}

	state.earned = earned
	state.completed = offer.MaxBack != nil && earned.GreaterThanOrEqual(*offer.MaxBack)
	state.partial = earned.IsPositive() && !state.completed
	return state
}

func spendingMet(offer *entity.Offer, spending decimal.Decimal) bool {
	if offer.SpendingTarget == nil {
		return true
	}
	return spending.GreaterThanOrEqual(*offer.SpendingTarget)
}

func countMet(offer *entity.Offer, count int) bool {
	if offer.TransactionTarget == nil {
		return true
	}
	return count >= *offer.TransactionTarget
}

// percentComplete measures overall progress toward the offer's target, the
// highest tier threshold, or the percent-back cap. Offers with no target at
// all sit at zero.
func percentComplete(offer *entity.Offer, spending decimal.Decimal, count int) float64 {
	ratio := func(have, want decimal.Decimal) float64 {
		if !want.IsPositive() {
			return 0
		}
		r, _ := have.Div(want).Mul(decimal.NewFromInt(100)).Float64()
		if r > 100 {
			return 100
		}
		if r < 0 {
			return 0
		}
		return r
	}

	if offer.HasTiers() {
		value := spending
		if offer.Type == entity.OfferTypeTransactions {
			value = decimal.NewFromInt(int64(count))
		}
		return ratio(value, offer.HighestTier().Threshold)
	}

	switch offer.Type {
	case entity.OfferTypeSpending:
		if offer.SpendingTarget == nil {
			return 0
		}
		return ratio(spending, *offer.SpendingTarget)
	case entity.OfferTypeTransactions:
		if offer.TransactionTarget == nil {
			return 0
		}
		return ratio(decimal.NewFromInt(int64(count)), decimal.NewFromInt(int64(*offer.TransactionTarget)))
	case entity.OfferTypeCombo:
		percents := make([]float64, 0, 2)
		if offer.SpendingTarget != nil {
			percents = append(percents, ratio(spending, *offer.SpendingTarget))
		}
		if offer.TransactionTarget != nil {
			percents = append(percents, ratio(decimal.NewFromInt(int64(count)), decimal.NewFromInt(int64(*offer.TransactionTarget))))
		}
		if len(percents) == 0 {
			return 0
		}
		min := percents[0]
		for _, p := range percents[1:] {
			if p < min {
				min = p
			}
		}
		return min
	case entity.OfferTypePercentBack:
		if offer.PercentBack == nil || offer.MaxBack == nil {
			return 0
		}
		earned := spending.Mul(*offer.PercentBack).Div(decimal.NewFromInt(100))
		return ratio(earned, *offer.MaxBack)
	default:
		return 0
	}
}

// periodReward is the most one tracking period of the offer can pay out.
func periodReward(offer *entity.Offer) decimal.Decimal {
	if offer.HasTiers() {
		return offer.HighestTier().Reward
	}
	if offer.Type == entity.OfferTypePercentBack {
		if offer.MaxBack == nil {
			return decimal.Zero
		}
		return *offer.MaxBack
	}
	return offer.Reward
}

// RemainingPotential is what an offer could still pay out given current
// progress. Monthly offers count only their incomplete months, plus the
// completion bonus when it has not been earned yet.
func RemainingPotential(offer *entity.Offer, p *Progress) decimal.Decimal {
	perPeriod := periodReward(offer)

	if offer.MonthlyTracking {
		incomplete := int64(len(p.Months) - p.CompletedMonths)
		remaining := perPeriod.Mul(decimal.NewFromInt(incomplete))
		if offer.BonusReward != nil && !p.BonusEarned {
			remaining = remaining.Add(*offer.BonusReward)
		}
		return remaining
	}

	if p.Completed {
		return decimal.Zero
	}
	remaining := perPeriod.Sub(p.Earned)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
