package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
)

// ListMerchantsInput represents the input for merchant autocomplete.
type ListMerchantsInput struct {
	PersonID *uuid.UUID
}

// ListMerchantsOutput lists distinct merchant names.
type ListMerchantsOutput struct {
	Merchants []string
}

// ListMerchantsUseCase serves merchant-name autocomplete.
type ListMerchantsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListMerchantsUseCase creates a new ListMerchantsUseCase instance.
func NewListMerchantsUseCase(transactionRepo adapter.TransactionRepository) *ListMerchantsUseCase {
	return &ListMerchantsUseCase{transactionRepo: transactionRepo}
}

// Execute lists every merchant seen in the ledger.
func (uc *ListMerchantsUseCase) Execute(ctx context.Context, input ListMerchantsInput) (*ListMerchantsOutput, error) {
	merchants, err := uc.transactionRepo.Merchants(ctx, input.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	return &ListMerchantsOutput{Merchants: merchants}, nil
}

// GetMerchantCategoriesInput represents the input for a category suggestion.
type GetMerchantCategoriesInput struct {
	Merchant string
}

// GetMerchantCategoriesOutput is the most common category set recorded for
// the merchant. Empty for unknown merchants.
type GetMerchantCategoriesOutput struct {
	Categories []string
}

// GetMerchantCategoriesUseCase suggests categories for a merchant based on
// how past purchases there were labeled.
type GetMerchantCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetMerchantCategoriesUseCase creates a new GetMerchantCategoriesUseCase instance.
func NewGetMerchantCategoriesUseCase(transactionRepo adapter.TransactionRepository) *GetMerchantCategoriesUseCase {
	return &GetMerchantCategoriesUseCase{transactionRepo: transactionRepo}
}

// Execute looks up the merchant's usual categories.
func (uc *GetMerchantCategoriesUseCase) Execute(ctx context.Context, input GetMerchantCategoriesInput) (*GetMerchantCategoriesOutput, error) {
	categories, err := uc.transactionRepo.MerchantCategories(ctx, input.Merchant)
	if err != nil {
		return nil, fmt.Errorf("failed to look up merchant categories: %w", err)
	}
	return &GetMerchantCategoriesOutput{Categories: categories}, nil
}
