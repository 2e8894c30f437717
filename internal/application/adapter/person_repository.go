// Package adapter defines the interfaces between the application layer and
// the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// PersonRepository persists card holders.
type PersonRepository interface {
	// Create stores a new person.
	Create(ctx context.Context, person *entity.Person) error

	// GetByID retrieves a person by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Person, error)

	// List retrieves all people ordered by name.
	List(ctx context.Context) ([]*entity.Person, error)

	// Update stores changes to an existing person.
	Update(ctx context.Context, person *entity.Person) error

	// Delete soft-deletes a person and cascades to their offers and
	// transactions.
	Delete(ctx context.Context, id uuid.UUID) error
}
