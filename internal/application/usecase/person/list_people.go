package person

import (
	"context"
	"fmt"

	"github.com/offer-tracker/backend/internal/application/adapter"
	"github.com/offer-tracker/backend/internal/domain/entity"
)

// ListPeopleOutput represents every known card holder.
type ListPeopleOutput struct {
	People []*entity.Person
}

// ListPeopleUseCase handles card-holder listing.
type ListPeopleUseCase struct {
	personRepo adapter.PersonRepository
}

// NewListPeopleUseCase creates a new ListPeopleUseCase instance.
func NewListPeopleUseCase(personRepo adapter.PersonRepository) *ListPeopleUseCase {
	return &ListPeopleUseCase{personRepo: personRepo}
}

// Execute lists people ordered by name.
func (uc *ListPeopleUseCase) Execute(ctx context.Context) (*ListPeopleOutput, error) {
	people, err := uc.personRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return &ListPeopleOutput{People: people}, nil
}
