package person

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// UpdatePersonInput represents the input for renaming a card holder.
type UpdatePersonInput struct {
	PersonID uuid.UUID
	Name     string
}

// UpdatePersonOutput represents the updated person.
type UpdatePersonOutput struct {
	Person *entity.Person
}

// UpdatePersonUseCase handles card-holder updates.
type UpdatePersonUseCase struct {
	personRepo adapter.PersonRepository
}

// NewUpdatePersonUseCase creates a new UpdatePersonUseCase instance.
func NewUpdatePersonUseCase(personRepo adapter.PersonRepository) *UpdatePersonUseCase {
	return &UpdatePersonUseCase{personRepo: personRepo}
}

// Execute renames the person.
func (uc *UpdatePersonUseCase) Execute(ctx context.Context, input UpdatePersonInput) (*UpdatePersonOutput, error) {
	person, err := uc.personRepo.GetByID(ctx, input.PersonID)
	if err != nil {
		return nil, domainerror.NewPersonError(
			domainerror.ErrCodePersonNotFound,
			"person not found",
			domainerror.ErrPersonNotFound,
		)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewPersonError(
			domainerror.ErrCodePersonNameRequired,
			"person name is required",
			domainerror.ErrPersonNameRequired,
		)
	}

	person.Name = name
	person.UpdatedAt = time.Now().UTC()
	if err := uc.personRepo.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	return &UpdatePersonOutput{Person: person}, nil
}
