package dto

import (
	"time"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// CreatePersonRequest represents the request body for adding a card holder.
type CreatePersonRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdatePersonRequest represents the request body for renaming a card holder.
type UpdatePersonRequest struct {
	Name string `json:"name" binding:"required"`
}

// PersonResponse represents a single person in API responses.
type PersonResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonListResponse represents the response for listing people.
type PersonListResponse struct {
	People []PersonResponse `json:"people"`
}

// ToPersonResponse converts a domain Person entity to a PersonResponse DTO.
func ToPersonResponse(p *entity.Person) PersonResponse {
	return PersonResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPersonListResponse converts a list of people to a PersonListResponse.
func ToPersonListResponse(people []*entity.Person) PersonListResponse {
	out := make([]PersonResponse, len(people))
	for i, p := range people {
		out[i] = ToPersonResponse(p)
	}
	return PersonListResponse{People: out}
}
