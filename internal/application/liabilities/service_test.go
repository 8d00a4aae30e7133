package liabilities

import (
	"context"
	"testing"
	"time"

	"wealthpulse-backend/internal/domain"
	"wealthpulse-backend/internal/ledger"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLiabilitiesTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Entity{}, &domain.Asset{}, &domain.Liability{}))
	return &Service{DB: db}, db
}

func TestCreate_Validation(t *testing.T) {
	s, _ := setupLiabilitiesTest(t)

	_, err := s.Create(context.Background(), CreateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)

	unknown := uuid.New()
	_, err = s.Create(context.Background(), CreateInput{Name: "Loan", OwnerEntityID: &unknown})
	assert.ErrorIs(t, err, ErrUnknownEntity)

	_, err = s.Create(context.Background(), CreateInput{
		Name:           "Loan",
		OwnershipSplit: map[string]float64{"not-a-uuid": 50},
	})
	assert.ErrorIs(t, err, ErrBadSplitKey)
}

// Drifted split values are stored untouched.
func TestCreate_LenientSplitValues(t *testing.T) {
	s, db := setupLiabilitiesTest(t)
	owner := domain.Entity{Name: "Alice"}
	require.NoError(t, db.Create(&owner).Error)

	liability, err := s.Create(context.Background(), CreateInput{
		Name:           "Loan",
		Balance:        1000,
		OwnershipSplit: map[string]float64{owner.ID.String(): 130},
	})
	require.NoError(t, err)
	assert.Equal(t, 130.0, liability.OwnershipSplit.Data()[owner.ID.String()])
}

func TestSchedule_PaidOff(t *testing.T) {
	s, db := setupLiabilitiesTest(t)
	term := 12
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	loan := &domain.Liability{
		Name: "Car loan", Balance: 12000, InterestRate: 6,
		TermMonths: &term, StartDate: start,
	}
	require.NoError(t, db.Create(loan).Error)

	result, err := s.Schedule(context.Background(), loan.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPaidOff, result.Status)
	require.NotNil(t, result.Schedule)
	assert.Len(t, result.Schedule.Rows, 12)
	require.NotNil(t, result.PayoffDate)
	// 12 months from Jan 31, 2024, day clamped within each month.
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), *result.PayoffDate)
}

// A payment below monthly interest classifies as non-amortizing; the endpoint
// still answers, it never loops.
func TestSchedule_NonAmortizing(t *testing.T) {
	s, db := setupLiabilitiesTest(t)
	payment := 4.0
	loan := &domain.Liability{Name: "Bad loan", Balance: 1000, InterestRate: 5, Payment: &payment}
	require.NoError(t, db.Create(loan).Error)

	result, err := s.Schedule(context.Background(), loan.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusNonAmortizing, result.Status)
	assert.Nil(t, result.Schedule)
	assert.Nil(t, result.PayoffDate)
}

func TestSchedule_Unscheduled(t *testing.T) {
	s, db := setupLiabilitiesTest(t)
	loan := &domain.Liability{Name: "Sketchy IOU", Balance: 500, InterestRate: 3}
	require.NoError(t, db.Create(loan).Error)

	result, err := s.Schedule(context.Background(), loan.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusUnscheduled, result.Status)
}

func TestSchedule_NotFound(t *testing.T) {
	s, _ := setupLiabilitiesTest(t)
	_, err := s.Schedule(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrLiabilityNotFound)
}

func TestUpdate_PartialFields(t *testing.T) {
	s, db := setupLiabilitiesTest(t)
	owner := domain.Entity{Name: "Alice"}
	require.NoError(t, db.Create(&owner).Error)
	loan, err := s.Create(context.Background(), CreateInput{
		Name: "Loan", Balance: 1000, InterestRate: 4, OwnerEntityID: &owner.ID,
	})
	require.NoError(t, err)

	newBalance := 800.0
	updated, err := s.Update(context.Background(), loan.ID, UpdateInput{Balance: &newBalance})
	require.NoError(t, err)
	assert.Equal(t, 800.0, updated.Balance)
	assert.Equal(t, "Loan", updated.Name)
	require.NotNil(t, updated.OwnerEntityID)
	assert.Equal(t, owner.ID, *updated.OwnerEntityID)
}
