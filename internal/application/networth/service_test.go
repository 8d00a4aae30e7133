package networth

import (
	"context"
	"testing"

	entsvc "wealthpulse-backend/internal/application/entities"
	"wealthpulse-backend/internal/domain"
	"wealthpulse-backend/internal/ledger"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNetWorthTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Entity{}, &domain.Asset{}, &domain.Liability{}))
	return &Service{DB: db}, db
}

// Seeds Alice (sole 50k asset, 10k loan), Bob, and a 100k asset split 60/40.
func seedLedger(t *testing.T, db *gorm.DB) (alice, bob domain.Entity) {
	alice = domain.Entity{Name: "Alice", Type: domain.EntityPerson}
	bob = domain.Entity{Name: "Bob", Type: domain.EntityPerson}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	require.NoError(t, db.Create(&domain.Asset{
		Name: "Brokerage", Valuation: 50000, OwnerEntityID: &alice.ID,
	}).Error)
	require.NoError(t, db.Create(&domain.Asset{
		Name: "House", Valuation: 100000,
		OwnershipSplit: domain.NewSplit(map[string]float64{
			alice.ID.String(): 60,
			bob.ID.String():   40,
		}),
	}).Error)
	require.NoError(t, db.Create(&domain.Liability{
		Name: "Loan", Balance: 10000, OwnerEntityID: &alice.ID,
	}).Error)
	return alice, bob
}

func TestSummary_PerEntityAndAll(t *testing.T) {
	s, db := setupNetWorthTest(t)
	seedLedger(t, db)

	aliceSum, err := s.Summary(context.Background(), "Alice")
	require.NoError(t, err)
	assert.InDelta(t, 50000+60000, aliceSum.AssetTotal, 1e-9)
	assert.InDelta(t, 10000, aliceSum.LiabilityTotal, 1e-9)
	assert.InDelta(t, 100000, aliceSum.NetWorth, 1e-9)

	bobSum, err := s.Summary(context.Background(), "Bob")
	require.NoError(t, err)
	assert.InDelta(t, 40000, bobSum.NetWorth, 1e-9)

	allSum, err := s.Summary(context.Background(), ledger.AllEntities)
	require.NoError(t, err)
	assert.InDelta(t, 150000, allSum.AssetTotal, 1e-9)
	assert.InDelta(t, 140000, allSum.NetWorth, 1e-9)
}

func TestSummary_UnknownEntity(t *testing.T) {
	s, db := setupNetWorthTest(t)
	seedLedger(t, db)
	_, err := s.Summary(context.Background(), "Carol")
	assert.ErrorIs(t, err, ErrUnknownViewingEntity)
}

// Rename preserves value: totals under the new name equal totals under the
// old one, because records reference entities by ID.
func TestSummary_RenamePreservesValue(t *testing.T) {
	s, db := setupNetWorthTest(t)
	alice, _ := seedLedger(t, db)

	before, err := s.Summary(context.Background(), "Alice")
	require.NoError(t, err)

	registry := &entsvc.Service{DB: db}
	_, err = registry.Rename(context.Background(), alice.ID, "Alicia")
	require.NoError(t, err)

	after, err := s.Summary(context.Background(), "Alicia")
	require.NoError(t, err)
	assert.Equal(t, before.AssetTotal, after.AssetTotal)
	assert.Equal(t, before.LiabilityTotal, after.LiabilityTotal)
	assert.Equal(t, before.NetWorth, after.NetWorth)

	// The old name no longer resolves.
	_, err = s.Summary(context.Background(), "Alice")
	assert.ErrorIs(t, err, ErrUnknownViewingEntity)
}

func TestBreakdown_FiltersZeroShares(t *testing.T) {
	s, db := setupNetWorthTest(t)
	seedLedger(t, db)

	b, err := s.Breakdown(context.Background(), "Bob")
	require.NoError(t, err)
	require.Len(t, b.Assets, 1)
	assert.Equal(t, "House", b.Assets[0].Name)
	assert.InDelta(t, 0.4, b.Assets[0].Share, 1e-9)
	assert.InDelta(t, 40000, b.Assets[0].Weighted, 1e-9)
	assert.Empty(t, b.Liabilities)
}

// The cache is an accelerator only: cached and computed summaries agree, and
// invalidation plus a data change shows up in the next read.
func TestSummary_CacheInvariance(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s, db := setupNetWorthTest(t)
	s.Views = &ViewCache{Rdb: rdb}
	alice, _ := seedLedger(t, db)

	first, err := s.Summary(context.Background(), "Alice")
	require.NoError(t, err)
	cached, err := s.Summary(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	// Without invalidation a stale value is served; after Invalidate the new
	// asset is visible.
	require.NoError(t, db.Create(&domain.Asset{
		Name: "Savings", Valuation: 5000, OwnerEntityID: &alice.ID,
	}).Error)
	s.Views.Invalidate(context.Background())

	fresh, err := s.Summary(context.Background(), "Alice")
	require.NoError(t, err)
	assert.InDelta(t, first.AssetTotal+5000, fresh.AssetTotal, 1e-9)
}

func TestViewCache_NilSafe(t *testing.T) {
	var vc *ViewCache
	_, ok := vc.Get(context.Background(), "Alice")
	assert.False(t, ok)
	vc.Put(context.Background(), "Alice", &Summary{})
	vc.Invalidate(context.Background())
}
