package networth

import (
	"context"
	"errors"

	"wealthpulse-backend/internal/domain"
	"wealthpulse-backend/internal/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownViewingEntity = errors.New("Unknown viewing entity")

// Service aggregates asset valuations and liability balances into per-entity
// net-worth views. It loads one snapshot per call, resolves entity IDs to
// names, and hands the pure arithmetic to the ledger package.
type Service struct {
	DB    *gorm.DB
	Views *ViewCache
}

// Summary is the net-worth view for one viewing entity.
type Summary struct {
	Entity         string  `json:"entity"`
	AssetTotal     float64 `json:"asset_total"`
	LiabilityTotal float64 `json:"liability_total"`
	NetWorth       float64 `json:"net_worth"`
}

// BreakdownEntry is one visible record of a materialized view (share > 0).
type BreakdownEntry struct {
	Kind     string    `json:"kind"` // "asset" or "liability"
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Share    float64   `json:"share"`
	Weighted float64   `json:"weighted"`
}

// Breakdown is the display view behind a Summary.
type Breakdown struct {
	Entity      string           `json:"entity"`
	Assets      []BreakdownEntry `json:"assets"`
	Liabilities []BreakdownEntry `json:"liabilities"`
}

// snapshot is one consistent read of the registry and both record collections,
// with ownership already translated from IDs to display names.
type snapshot struct {
	assets        []ledger.Record
	liabilities   []ledger.Record
	assetMeta     []domain.Asset
	liabilityMeta []domain.Liability
	entityNames   map[string]struct{}
}

// Summary computes (or serves from cache) the net-worth view for a viewing
// entity name, the aggregate "All", or "Unassigned". The cache never changes
// the result; it only skips the recomputation.
func (s *Service) Summary(ctx context.Context, viewing string) (*Summary, error) {
	if cached, ok := s.Views.Get(ctx, viewing); ok {
		return cached, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := snap.checkViewing(viewing); err != nil {
		return nil, err
	}

	sum := &Summary{
		Entity:         viewing,
		AssetTotal:     ledger.TotalValue(snap.assets, viewing),
		LiabilityTotal: ledger.TotalValue(snap.liabilities, viewing),
	}
	sum.NetWorth = sum.AssetTotal - sum.LiabilityTotal

	s.Views.Put(ctx, viewing, sum)
	return sum, nil
}

// Breakdown returns the per-record materialized view for a viewing entity.
func (s *Service) Breakdown(ctx context.Context, viewing string) (*Breakdown, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := snap.checkViewing(viewing); err != nil {
		return nil, err
	}

	b := &Breakdown{Entity: viewing}
	for i, r := range snap.assets {
		if share := ledger.ResolveShare(r.Ownership, viewing); share > 0 {
			b.Assets = append(b.Assets, BreakdownEntry{
				Kind:     "asset",
				ID:       snap.assetMeta[i].ID,
				Name:     snap.assetMeta[i].Name,
				Value:    r.Value,
				Share:    share,
				Weighted: r.Value * share,
			})
		}
	}
	for i, r := range snap.liabilities {
		if share := ledger.ResolveShare(r.Ownership, viewing); share > 0 {
			b.Liabilities = append(b.Liabilities, BreakdownEntry{
				Kind:     "liability",
				ID:       snap.liabilityMeta[i].ID,
				Name:     snap.liabilityMeta[i].Name,
				Value:    r.Value,
				Share:    share,
				Weighted: r.Value * share,
			})
		}
	}
	return b, nil
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	var entities []domain.Entity
	if err := s.DB.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(entities))
	nameSet := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		names[e.ID] = e.Name
		nameSet[e.Name] = struct{}{}
	}

	var assets []domain.Asset
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&assets).Error; err != nil {
		return nil, err
	}
	var liabilities []domain.Liability
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&liabilities).Error; err != nil {
		return nil, err
	}

	snap := &snapshot{
		assetMeta:     assets,
		liabilityMeta: liabilities,
		entityNames:   nameSet,
	}
	for _, a := range assets {
		snap.assets = append(snap.assets, ledger.Record{
			Ownership: resolveOwnership(a.OwnerEntityID, a.OwnershipSplit.Data(), names),
			Value:     a.Valuation,
		})
	}
	for _, l := range liabilities {
		snap.liabilities = append(snap.liabilities, ledger.Record{
			Ownership: resolveOwnership(l.OwnerEntityID, l.OwnershipSplit.Data(), names),
			Value:     l.Balance,
		})
	}
	return snap, nil
}

func (sn *snapshot) checkViewing(viewing string) error {
	if viewing == ledger.AllEntities || viewing == ledger.Unassigned {
		return nil
	}
	if _, ok := sn.entityNames[viewing]; !ok {
		return ErrUnknownViewingEntity
	}
	return nil
}

// resolveOwnership translates stored entity IDs into the current display
// names. A dangling or nil owner renders as Unassigned; split keys whose
// entity no longer exists are dropped (their percentage with them — the
// remaining values are not renormalized).
func resolveOwnership(owner *uuid.UUID, split map[string]float64, names map[uuid.UUID]string) ledger.Ownership {
	o := ledger.Ownership{OwnerEntity: ledger.Unassigned}
	if owner != nil {
		if name, ok := names[*owner]; ok {
			o.OwnerEntity = name
		}
	}
	if len(split) > 0 {
		o.Split = make(map[string]float64, len(split))
		for key, pct := range split {
			id, err := uuid.Parse(key)
			if err != nil {
				continue
			}
			if name, ok := names[id]; ok {
				o.Split[name] = pct
			}
		}
		if len(o.Split) == 0 {
			o.Split = nil
		}
	}
	return o
}
