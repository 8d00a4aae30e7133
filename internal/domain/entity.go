package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entity types.
const (
	EntityPerson  = "person"
	EntityTrust   = "trust"
	EntityCompany = "company"
	EntityJoint   = "joint"
	EntityOther   = "other"
)

// Entity is a named ownership unit (person, trust, company, joint holding).
// Records reference entities by ID; Name is a mutable display attribute, so a
// rename touches this row only.
type Entity struct {
	ID        uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string                      `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Type      string                      `gorm:"column:type;not null;default:person" json:"type"`
	Members   datatypes.JSONSlice[string] `gorm:"column:members" json:"members"`
	Notes     string                      `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

func (Entity) TableName() string {
	return "entities"
}

func (e *Entity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ValidEntityType reports whether t is one of the known entity types.
func ValidEntityType(t string) bool {
	switch t {
	case EntityPerson, EntityTrust, EntityCompany, EntityJoint, EntityOther:
		return true
	}
	return false
}
