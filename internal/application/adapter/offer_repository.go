package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// OfferRepository persists offers.
type OfferRepository interface {
	// Create stores a new offer.
	Create(ctx context.Context, offer *entity.Offer) error

	// GetByID retrieves an offer by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// List retrieves offers ordered by start date. A nil personID returns
	// every offer (single-user mode).
	List(ctx context.Context, personID *uuid.UUID) ([]*entity.Offer, error)

	// Update stores changes to an existing offer.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete soft-deletes an offer.
	Delete(ctx context.Context, id uuid.UUID) error
}
