package assets

import (
	"context"
	"strings"

	"wealthpulse-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service encapsulates asset CRUD. Ownership references are validated against
// the entity registry; split percentages are stored as given (no sum check, no
// normalization).
type Service struct {
	DB *gorm.DB
}

// CreateInput carries the create-asset payload. OwnershipSplit keys are entity
// IDs.
type CreateInput struct {
	Name           string             `json:"name"`
	Category       string             `json:"category"`
	Valuation      float64            `json:"valuation"`
	Currency       string             `json:"currency"`
	OwnerEntityID  *uuid.UUID         `json:"owner_entity_id"`
	OwnershipSplit map[string]float64 `json:"ownership_split"`
	Notes          string             `json:"notes"`
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name           *string             `json:"name"`
	Category       *string             `json:"category"`
	Valuation      *float64            `json:"valuation"`
	Currency       *string             `json:"currency"`
	OwnerEntityID  *uuid.UUID          `json:"owner_entity_id"`
	OwnershipSplit *map[string]float64 `json:"ownership_split"`
	Notes          *string             `json:"notes"`
}

// Create validates ownership references and stores a new asset.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Asset, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.checkOwnership(ctx, in.OwnerEntityID, in.OwnershipSplit); err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	asset := &domain.Asset{
		Name:           name,
		Category:       in.Category,
		Valuation:      in.Valuation,
		Currency:       currency,
		OwnerEntityID:  in.OwnerEntityID,
		OwnershipSplit: domain.NewSplit(in.OwnershipSplit),
		Notes:          in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// List returns all assets, oldest first.
func (s *Service) List(ctx context.Context) ([]domain.Asset, error) {
	var list []domain.Asset
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns one asset by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	var asset domain.Asset
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// Update applies the non-nil fields of in to an existing asset.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		asset.Name = name
	}
	if in.Category != nil {
		asset.Category = *in.Category
	}
	if in.Valuation != nil {
		asset.Valuation = *in.Valuation
	}
	if in.Currency != nil && *in.Currency != "" {
		asset.Currency = *in.Currency
	}
	if in.OwnerEntityID != nil {
		asset.OwnerEntityID = in.OwnerEntityID
	}
	if in.OwnershipSplit != nil {
		asset.OwnershipSplit = domain.NewSplit(*in.OwnershipSplit)
	}
	if in.Notes != nil {
		asset.Notes = *in.Notes
	}

	var split map[string]float64
	if len(asset.OwnershipSplit.Data()) > 0 {
		split = asset.OwnershipSplit.Data()
	}
	if err := s.checkOwnership(ctx, asset.OwnerEntityID, split); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes one asset.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Asset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// checkOwnership verifies the owner and every split key reference a live
// entity. Split values pass through unchecked.
func (s *Service) checkOwnership(ctx context.Context, owner *uuid.UUID, split map[string]float64) error {
	ids := make([]uuid.UUID, 0, len(split)+1)
	if owner != nil {
		ids = append(ids, *owner)
	}
	for key := range split {
		id, err := uuid.Parse(key)
		if err != nil {
			return ErrBadSplitKey
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	ids = dedupe(ids)
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Entity{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrUnknownEntity
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
