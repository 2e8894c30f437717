package recommendation

import (
	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// MonthNeed is what one month of a monthly-tracking offer still requires.
type MonthNeed struct {
	Label                 string
	Window                valueobject.DateRange
	SpendingRemaining     decimal.Decimal
	TransactionsRemaining int
	DaysRemaining         int
}

// Needs is what an offer still requires within some window, after
// subtracting progress already made.
type Needs struct {
	SpendingRemaining     decimal.Decimal
	TransactionsRemaining int
	Months                []MonthNeed
}

// Any reports whether anything is still required.
func (n *Needs) Any() bool {
	if n == nil {
		return false
	}
	if n.SpendingRemaining.IsPositive() || n.TransactionsRemaining > 0 {
		return true
	}
	for _, m := range n.Months {
		if m.SpendingRemaining.IsPositive() || m.TransactionsRemaining > 0 {
			return true
		}
	}
	return false
}

// remainingNeeds computes what the offer still requires, restricted to the
// given window. Monthly offers break the answer down per month, counting
// only months that intersect the window and have not already closed.
func remainingNeeds(ao *ActiveOffer, window valueobject.DateRange, today valueobject.Date) *Needs {
	needs := &Needs{SpendingRemaining: decimal.Zero}

	if ao.Offer.MonthlyTracking {
		for _, month := range ao.Progress.Months {
			if month.Completed || month.Window.End.Before(today) {
				continue
			}
			if month.Window.Intersect(window).IsEmpty() {
				continue
			}
			spendRem, txRem := periodNeeds(ao.Offer, month.Spending, month.Transactions)
			if !spendRem.IsPositive() && txRem == 0 {
				continue
			}
			needs.Months = append(needs.Months, MonthNeed{
				Label:                 month.Label,
				Window:                month.Window,
				SpendingRemaining:     spendRem,
				TransactionsRemaining: txRem,
				DaysRemaining:         daysRemaining(today, month.Window.End),
			})
		}
		// Headline numbers for a monthly offer are its next open month.
		if len(needs.Months) > 0 {
			needs.SpendingRemaining = needs.Months[0].SpendingRemaining
			needs.TransactionsRemaining = needs.Months[0].TransactionsRemaining
		}
		return needs
	}

	if ao.Progress.Completed {
		return needs
	}
	needs.SpendingRemaining, needs.TransactionsRemaining = periodNeeds(ao.Offer, ao.Progress.TotalSpending, ao.Progress.TotalTransactions)
	return needs
}

// periodNeeds is the gap between one period's progress and its target.
func periodNeeds(offer *entity.Offer, spending decimal.Decimal, count int) (decimal.Decimal, int) {
	if offer.HasTiers() {
		top := offer.HighestTier().Threshold
		if offer.Type == entity.OfferTypeTransactions {
			return decimal.Zero, intGap(top, count)
		}
		return decGap(top, spending), 0
	}

	switch offer.Type {
	case entity.OfferTypeSpending:
		if offer.SpendingTarget == nil {
			return decimal.Zero, 0
		}
		return decGap(*offer.SpendingTarget, spending), 0
	case entity.OfferTypeTransactions:
		if offer.TransactionTarget == nil {
			return decimal.Zero, 0
		}
		remaining := *offer.TransactionTarget - count
		if remaining < 0 {
			remaining = 0
		}
		return decimal.Zero, remaining
	case entity.OfferTypeCombo:
		spendRem := decimal.Zero
		txRem := 0
		if offer.SpendingTarget != nil {
			spendRem = decGap(*offer.SpendingTarget, spending)
		}
		if offer.TransactionTarget != nil {
			txRem = *offer.TransactionTarget - count
			if txRem < 0 {
				txRem = 0
			}
		}
		return spendRem, txRem
	case entity.OfferTypePercentBack:
		return percentBackNeeds(offer, spending), 0
	default:
		return decimal.Zero, 0
	}
}

// percentBackNeeds is the spending that would max out a percent-back offer:
// first clear the minimum spend floor, then reach the cap.
func percentBackNeeds(offer *entity.Offer, spending decimal.Decimal) decimal.Decimal {
	if offer.PercentBack == nil || !offer.PercentBack.IsPositive() {
		return decimal.Zero
	}
	if offer.MinSpendThreshold != nil && spending.LessThan(*offer.MinSpendThreshold) {
		return offer.MinSpendThreshold.Sub(spending)
	}
	if offer.MaxBack == nil {
		return decimal.Zero
	}
	capSpend := offer.MaxBack.Mul(decimal.NewFromInt(100)).Div(*offer.PercentBack)
	return decGap(capSpend, spending)
}

func decGap(target, have decimal.Decimal) decimal.Decimal {
	gap := target.Sub(have)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

func intGap(target decimal.Decimal, have int) int {
	gap := int(target.IntPart()) - have
	if gap < 0 {
		return 0
	}
	return gap
}

func daysRemaining(today, end valueobject.Date) int {
	days := today.DaysUntil(end)
	if days < 0 {
		return 0
	}
	return days
}
