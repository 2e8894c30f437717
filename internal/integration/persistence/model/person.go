// Package model defines database models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offer-tracker/backend/internal/domain/entity"
)

// PersonModel represents the people table in the database.
type PersonModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the PersonModel.
func (PersonModel) TableName() string {
	return "people"
}

// ToEntity converts a PersonModel to a domain Person entity.
func (m *PersonModel) ToEntity() *entity.Person {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Person{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// PersonFromEntity creates a PersonModel from a domain Person entity.
func PersonFromEntity(person *entity.Person) *PersonModel {
	var deletedAt gorm.DeletedAt
	if person.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *person.DeletedAt, Valid: true}
	}

	return &PersonModel{
		ID:        person.ID,
		Name:      person.Name,
		CreatedAt: person.CreatedAt,
		UpdatedAt: person.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
