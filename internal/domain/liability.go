package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Liability is a debt with optional loan parameters. Payment and TermMonths
// are both optional; the amortization engine derives whichever is missing when
// it can. Ownership fields mirror Asset.
type Liability struct {
	ID             uuid.UUID                              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string                                 `gorm:"column:name;not null" json:"name"`
	Type           string                                 `gorm:"column:type" json:"type"`
	Balance        float64                                `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	InterestRate   float64                                `gorm:"column:interest_rate;type:decimal(9,4);not null;default:0" json:"interest_rate"`
	Payment        *float64                               `gorm:"column:payment;type:decimal(18,2)" json:"payment"`
	TermMonths     *int                                   `gorm:"column:term_months" json:"term_months"`
	OwnerEntityID  *uuid.UUID                             `gorm:"column:owner_entity_id;type:uuid;index" json:"owner_entity_id"`
	OwnershipSplit datatypes.JSONType[map[string]float64] `gorm:"column:ownership_split" json:"ownership_split"`
	StartDate      time.Time                              `gorm:"column:start_date" json:"start_date"`
	DueDate        *time.Time                             `gorm:"column:due_date" json:"due_date"`
	CreatedAt      time.Time                              `json:"createdAt"`
	UpdatedAt      time.Time                              `json:"updatedAt"`
}

func (Liability) TableName() string {
	return "liabilities"
}

func (l *Liability) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
