package person

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offer-tracker/backend/internal/application/adapter"
	domainerror "github.com/offer-tracker/backend/internal/domain/error"
)

// DeletePersonInput represents the input for removing a card holder.
type DeletePersonInput struct {
	PersonID uuid.UUID
}

// DeletePersonUseCase removes a card holder. The repository cascades the
// soft delete to the person's offers and transactions.
type DeletePersonUseCase struct {
	personRepo adapter.PersonRepository
}

// NewDeletePersonUseCase creates a new DeletePersonUseCase instance.
func NewDeletePersonUseCase(personRepo adapter.PersonRepository) *DeletePersonUseCase {
	return &DeletePersonUseCase{personRepo: personRepo}
}

// Execute soft-deletes the person and everything they own.
func (uc *DeletePersonUseCase) Execute(ctx context.Context, input DeletePersonInput) error {
	if _, err := uc.personRepo.GetByID(ctx, input.PersonID); err != nil {
		return domainerror.NewPersonError(
			domainerror.ErrCodePersonNotFound,
			"person not found",
			domainerror.ErrPersonNotFound,
		)
	}
	if err := uc.personRepo.Delete(ctx, input.PersonID); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}
