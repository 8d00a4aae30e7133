package entities

import (
	"context"
	"strings"

	"wealthpulse-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultEntityName seeds the registry so it is never empty.
const DefaultEntityName = "Personal"

// Service encapsulates the entity registry: create, rename, delete and the
// deletion cascade into asset/liability ownership fields.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries the create-entity payload.
type CreateInput struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Members []string `json:"members"`
	Notes   string   `json:"notes"`
}

// Create adds a new entity. Names are trimmed and must be unique
// case-insensitively.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Entity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	entityType := in.Type
	if entityType == "" {
		entityType = domain.EntityPerson
	}
	if !domain.ValidEntityType(entityType) {
		return nil, ErrInvalidType
	}

	taken, err := s.nameTaken(ctx, s.DB, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	entity := &domain.Entity{
		Name:    name,
		Type:    entityType,
		Members: in.Members,
		Notes:   in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Rename changes an entity's display name. Records reference entities by ID,
// so no cascade into assets or liabilities is needed; per-entity totals are
// unchanged by construction.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, newName string) (*domain.Entity, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrNameRequired
	}

	var entity domain.Entity
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	taken, err := s.nameTaken(ctx, s.DB, newName, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	if err := s.DB.WithContext(ctx).Model(&entity).Update("name", newName).Error; err != nil {
		return nil, err
	}
	entity.Name = newName
	return &entity, nil
}

// Delete removes an entity and cascades in one transaction: matching
// owner_entity_id columns go NULL (rendered as Unassigned) and the entity's
// key is stripped from every ownership split. Remaining split percentages are
// intentionally not renormalized. Deleting the last entity is refused so the
// registry never reaches zero.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Entity{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastEntity
		}

		var entity domain.Entity
		if err := tx.Where("id = ?", id).First(&entity).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrEntityNotFound
			}
			return err
		}
		if err := tx.Delete(&entity).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Asset{}).
			Where("owner_entity_id = ?", id).
			Update("owner_entity_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Liability{}).
			Where("owner_entity_id = ?", id).
			Update("owner_entity_id", nil).Error; err != nil {
			return err
		}

		if err := stripAssetSplits(tx, id); err != nil {
			return err
		}
		return stripLiabilitySplits(tx, id)
	})
}

// List returns all entities, oldest first.
func (s *Service) List(ctx context.Context) ([]domain.Entity, error) {
	var list []domain.Entity
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// EnsureDefault seeds the registry with a default entity when empty, keeping
// the at-least-one invariant from first boot onward.
func (s *Service) EnsureDefault(ctx context.Context) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Entity{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&domain.Entity{
		Name: DefaultEntityName,
		Type: domain.EntityPerson,
	}).Error
}

func (s *Service) nameTaken(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error) {
	q := tx.WithContext(ctx).Model(&domain.Entity{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Split maps are JSON columns, so key removal happens in Go: load the rows
// that still carry the key, drop it, save. Runs inside the delete transaction.
func stripAssetSplits(tx *gorm.DB, id uuid.UUID) error {
	var assets []domain.Asset
	if err := tx.Find(&assets).Error; err != nil {
		return err
	}
	key := id.String()
	for i := range assets {
		split := assets[i].OwnershipSplit.Data()
		if _, ok := split[key]; !ok {
			continue
		}
		delete(split, key)
		assets[i].OwnershipSplit = domain.NewSplit(split)
		if err := tx.Model(&assets[i]).Update("ownership_split", assets[i].OwnershipSplit).Error; err != nil {
			return err
		}
	}
	return nil
}

func stripLiabilitySplits(tx *gorm.DB, id uuid.UUID) error {
	var liabilities []domain.Liability
	if err := tx.Find(&liabilities).Error; err != nil {
		return err
	}
	key := id.String()
	for i := range liabilities {
		split := liabilities[i].OwnershipSplit.Data()
		if _, ok := split[key]; !ok {
			continue
		}
		delete(split, key)
		liabilities[i].OwnershipSplit = domain.NewSplit(split)
		if err := tx.Model(&liabilities[i]).Update("ownership_split", liabilities[i].OwnershipSplit).Error; err != nil {
			return err
		}
	}
	return nil
}
