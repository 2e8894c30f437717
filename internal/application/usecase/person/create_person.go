// Package person contains card-holder management use cases.
package person

import (
	"context"
	"fmt"
	"strings"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// CreatePersonInput represents the input for adding a card holder.
type CreatePersonInput struct {
	Name string
}

// CreatePersonOutput represents the created person.
type CreatePersonOutput struct {
	Person *entity.Person
}

// CreatePersonUseCase handles card-holder creation.
type CreatePersonUseCase struct {
	personRepo adapter.PersonRepository
}

// NewCreatePersonUseCase creates a new CreatePersonUseCase instance.
func NewCreatePersonUseCase(personRepo adapter.PersonRepository) *CreatePersonUseCase {
	return &CreatePersonUseCase{personRepo: personRepo}
}

// Execute validates and stores the person.
func (uc *CreatePersonUseCase) Execute(ctx context.Context, input CreatePersonInput) (*CreatePersonOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewPersonError(
			domainerror.ErrCodePersonNameRequired,
			"person name is required",
			domainerror.ErrPersonNameRequired,
		)
	}

	person := entity.NewPerson(name)
	if err := uc.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return &CreatePersonOutput{Person: person}, nil
}
