package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
	"github.com/offer-tracker/backend/internal/integration/persistence/model"
)

// offerRepository implements the adapter.OfferRepository interface.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository instance.
func NewOfferRepository(db *gorm.DB) adapter.OfferRepository {
	return &offerRepository{
		db: db,
	}
}

// Create creates a new offer in the database.
func (r *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerModel, err := model.OfferFromEntity(offer)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(offerModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByID retrieves an offer by its ID.
func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerModel model.OfferModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&offerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOfferNotFound
		}
		return nil, result.Error
	}
	return offerModel.ToEntity()
}

// List retrieves offers ordered by start date, optionally scoped to a person.
func (r *offerRepository) List(ctx context.Context, personID *uuid.UUID) ([]*entity.Offer, error) {
	query := r.db.WithContext(ctx).Order("start_date ASC")
	if personID != nil {
		query = query.Where("person_id = ?", *personID)
	}

	var offerModels []model.OfferModel
	result := query.Find(&offerModels)
	if result.Error != nil {
		return nil, result.Error
	}

	offers := make([]*entity.Offer, len(offerModels))
	for i, om := range offerModels {
		offer, err := om.ToEntity()
		if err != nil {
			return nil, err
		}
		offers[i] = offer
	}
	return offers, nil
}

// Update updates an existing offer in the database.
func (r *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	offerModel, err := model.OfferFromEntity(offer)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Save(offerModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an offer from the database (soft delete).
func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.OfferModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
