package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/offer-tracker/backend/internal/domain/entity"
	"github.com/offer-tracker/backend/internal/domain/valueobject"
)

// OfferModel represents the offers table in the database. Dates are stored
// as ISO calendar-date strings so no timezone arithmetic can shift them.
// Categories and tiers are JSON columns.
type OfferModel struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PersonID          *uuid.UUID       `gorm:"type:uuid;index"`
	Name              string           `gorm:"type:varchar(255);not null"`
	Type              string           `gorm:"type:varchar(20);not null"`
	StartDate         string           `gorm:"type:varchar(10);not null;index"`
	EndDate           string           `gorm:"type:varchar(10);not null"`
	SpendingTarget    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TransactionTarget *int
	MinTransaction    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Categories        string           `gorm:"type:text"`
	Reward            decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	BonusReward       *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Tiers             string           `gorm:"type:text"`
	PercentBack       *decimal.Decimal `gorm:"type:decimal(7,4)"`
	MaxBack           *decimal.Decimal `gorm:"type:decimal(15,2)"`
	MinSpendThreshold *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Description       string           `gorm:"type:text"`
	MonthlyTracking   bool             `gorm:"not null;default:false"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         time.Time        `gorm:"not null"`
	DeletedAt         gorm.DeletedAt   `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the OfferModel.
func (OfferModel) TableName() string {
	return "offers"
}

type tierJSON struct {
	Threshold decimal.Decimal `json:"threshold"`
	Reward    decimal.Decimal `json:"reward"`
}

// ToEntity converts an OfferModel to a domain Offer entity.
func (m *OfferModel) ToEntity() (*entity.Offer, error) {
	startDate, err := valueobject.ParseDate(m.StartDate)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", m.ID, err)
	}
	endDate, err := valueobject.ParseDate(m.EndDate)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", m.ID, err)
	}

	categories, err := DecodeCategories(m.Categories)
	if err != nil {
		return nil, fmt.Errorf("offer %s categories: %w", m.ID, err)
	}

	var tiers []entity.Tier
	if m.Tiers != "" {
		var raw []tierJSON
		if err := json.Unmarshal([]byte(m.Tiers), &raw); err != nil {
			return nil, fmt.Errorf("offer %s tiers: %w", m.ID, err)
		}
		for _, t := range raw {
			tiers = append(tiers, entity.Tier{Threshold: t.Threshold, Reward: t.Reward})
		}
	}

	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Offer{
		ID:                m.ID,
		PersonID:          m.PersonID,
		Name:              m.Name,
		Type:              entity.OfferType(m.Type),
		StartDate:         startDate,
		EndDate:           endDate,
		SpendingTarget:    m.SpendingTarget,
		TransactionTarget: m.TransactionTarget,
		MinTransaction:    m.MinTransaction,
		Categories:        categories,
		Reward:            m.Reward,
		BonusReward:       m.BonusReward,
		Tiers:             tiers,
		PercentBack:       m.PercentBack,
		MaxBack:           m.MaxBack,
		MinSpendThreshold: m.MinSpendThreshold,
		Description:       m.Description,
		MonthlyTracking:   m.MonthlyTracking,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}, nil
}

// OfferFromEntity creates an OfferModel from a domain Offer entity.
func OfferFromEntity(offer *entity.Offer) (*OfferModel, error) {
	categories, err := EncodeCategories(offer.Categories)
	if err != nil {
		return nil, fmt.Errorf("offer %s categories: %w", offer.ID, err)
	}

	tiersJSON := ""
	if len(offer.Tiers) > 0 {
		raw := make([]tierJSON, len(offer.Tiers))
		for i, t := range offer.Tiers {
			raw[i] = tierJSON{Threshold: t.Threshold, Reward: t.Reward}
		}
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("offer %s tiers: %w", offer.ID, err)
		}
		tiersJSON = string(encoded)
	}

	var deletedAt gorm.DeletedAt
	if offer.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *offer.DeletedAt, Valid: true}
	}

	return &OfferModel{
		ID:                offer.ID,
		PersonID:          offer.PersonID,
		Name:              offer.Name,
		Type:              string(offer.Type),
		StartDate:         offer.StartDate.String(),
		EndDate:           offer.EndDate.String(),
		SpendingTarget:    offer.SpendingTarget,
		TransactionTarget: offer.TransactionTarget,
		MinTransaction:    offer.MinTransaction,
		Categories:        categories,
		Reward:            offer.Reward,
		BonusReward:       offer.BonusReward,
		Tiers:             tiersJSON,
		PercentBack:       offer.PercentBack,
		MaxBack:           offer.MaxBack,
		MinSpendThreshold: offer.MinSpendThreshold,
		Description:       offer.Description,
		MonthlyTracking:   offer.MonthlyTracking,
		CreatedAt:         offer.CreatedAt,
		UpdatedAt:         offer.UpdatedAt,
		DeletedAt:         deletedAt,
	}, nil
}

// EncodeCategories serializes a category slice for a JSON text column.
// Empty slices map to the empty string.
func EncodeCategories(categories []string) (string, error) {
	if len(categories) == 0 {
		return "", nil
	}
	encoded, err := json.Marshal(categories)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// DecodeCategories is the inverse of EncodeCategories.
func DecodeCategories(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
