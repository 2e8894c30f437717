// Package persistence implements repository interfaces for database operations.
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

// personRepository implements the adapter.PersonRepository interface.
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new person repository instance.
func NewPersonRepository(db *gorm.DB) adapter.PersonRepository {
	return &personRepository{
		db: db,
	}
}

// Create creates a new person in the database.
func (r *personRepository) Create(ctx context.Context, person *entity.Person) error {
	personModel := model.PersonFromEntity(person)
	result := r.db.WithContext(ctx).Create(personModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByID retrieves a person by its ID.
func (r *personRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
	var personModel model.PersonModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&personModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPersonNotFound
		}
		return nil, result.Error
	}
	return personModel.ToEntity(), nil
}

// List retrieves all people ordered by name.
func (r *personRepository) List(ctx context.Context) ([]*entity.Person, error) {
	var personModels []model.PersonModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&personModels)
	if result.Error != nil {
		return nil, result.Error
	}

	people := make([]*entity.Person, len(personModels))
	for i, pm := range personModels {
		people[i] = pm.ToEntity()
	}
	return people, nil
}

// Update updates an existing person in the database.
func (r *personRepository) Update(ctx context.Context, person *entity.Person) error {
	personModel := model.PersonFromEntity(person)
	result := r.db.WithContext(ctx).Save(personModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a person and cascades to their offers and transactions.
func (r *personRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.OfferModel{}, "person_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.TransactionModel{}, "person_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PersonModel{}, "id = ?", id).Error
	})
}
