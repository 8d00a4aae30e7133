package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Asset is a valued holding (property, account, vehicle, collectible...).
// OwnerEntityID is nil for unassigned assets. OwnershipSplit maps entity ID to
// a percentage and, when non-empty, overrides the sole owner. Split values are
// stored as given: sums that drift from 100 are reproduced, never corrected.
type Asset struct {
	ID             uuid.UUID                              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string                                 `gorm:"column:name;not null" json:"name"`
	Category       string                                 `gorm:"column:category" json:"category"`
	Valuation      float64                                `gorm:"column:valuation;type:decimal(18,2);not null;default:0" json:"valuation"`
	Currency       string                                 `gorm:"column:currency;not null;default:USD" json:"currency"`
	OwnerEntityID  *uuid.UUID                             `gorm:"column:owner_entity_id;type:uuid;index" json:"owner_entity_id"`
	OwnershipSplit datatypes.JSONType[map[string]float64] `gorm:"column:ownership_split" json:"ownership_split"`
	Notes          string                                 `gorm:"column:notes" json:"notes"`
	CreatedAt      time.Time                              `json:"createdAt"`
	UpdatedAt      time.Time                              `json:"updatedAt"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewSplit wraps an ID-keyed percentage map for storage in a JSON column.
func NewSplit(m map[string]float64) datatypes.JSONType[map[string]float64] {
	return datatypes.NewJSONType(m)
}
