package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for recording a purchase.
type CreateTransactionRequest struct {
	PersonID    *string         `json:"person_id,omitempty" binding:"omitempty,uuid"`
	Date        string          `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Merchant    string          `json:"merchant" binding:"required"`
	Categories  []string        `json:"categories,omitempty"`
	Description string          `json:"description,omitempty"`
}

// UpdateTransactionRequest represents the request body for editing a purchase.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Merchant    *string          `json:"merchant,omitempty"`
	Categories  *[]string        `json:"categories,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	PersonID    *string         `json:"person_id,omitempty"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Merchant    string          `json:"merchant"`
	Categories  []string        `json:"categories,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionListResponse represents a page of the ledger.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

// MerchantListResponse lists distinct merchant names.
type MerchantListResponse struct {
	Merchants []string `json:"merchants"`
}

// MerchantCategoriesResponse suggests categories for a merchant.
type MerchantCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// MatchingOffersResponse lists the offers a transaction counts toward.
type MatchingOffersResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Offers      []OfferResponse     `json:"offers"`
}

// ToTransactionResponse converts a domain Transaction entity to a DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          t.ID.String(),
		Date:        t.Date.String(),
		Amount:      t.Amount,
		Merchant:    t.Merchant,
		Categories:  t.Categories,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.PersonID != nil {
		id := t.PersonID.String()
		response.PersonID = &id
	}
	return response
}

// ToTransactionListResponse converts a page of transactions to a DTO.
func ToTransactionListResponse(transactions []*entity.Transaction, total int64) TransactionListResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: out,
		Total:        total,
	}
}
