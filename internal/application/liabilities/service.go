package liabilities

import (
	"context"
	"strings"
	"time"

	"wealthpulse-backend/internal/domain"
	"wealthpulse-backend/internal/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service encapsulates liability CRUD and per-liability amortization. The
// schedule math itself lives in the ledger package; this service only feeds it
// one liability's numeric fields.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries the create-liability payload. Payment and TermMonths are
// both optional; the amortization engine derives whichever is missing when it
// can.
type CreateInput struct {
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	Balance        float64            `json:"balance"`
	InterestRate   float64            `json:"interest_rate"`
	Payment        *float64           `json:"payment"`
	TermMonths     *int               `json:"term_months"`
	OwnerEntityID  *uuid.UUID         `json:"owner_entity_id"`
	OwnershipSplit map[string]float64 `json:"ownership_split"`
	StartDate      *time.Time         `json:"start_date"`
	DueDate        *time.Time         `json:"due_date"`
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name           *string             `json:"name"`
	Type           *string             `json:"type"`
	Balance        *float64            `json:"balance"`
	InterestRate   *float64            `json:"interest_rate"`
	Payment        *float64            `json:"payment"`
	TermMonths     *int                `json:"term_months"`
	OwnerEntityID  *uuid.UUID          `json:"owner_entity_id"`
	OwnershipSplit *map[string]float64 `json:"ownership_split"`
	StartDate      *time.Time          `json:"start_date"`
	DueDate        *time.Time          `json:"due_date"`
}

// ScheduleResult is the full amortization outcome for one liability.
type ScheduleResult struct {
	LiabilityID uuid.UUID        `json:"liability_id"`
	Status      ledger.Status    `json:"status"`
	Schedule    *ledger.Schedule `json:"schedule,omitempty"`
	PayoffDate  *time.Time       `json:"payoff_date,omitempty"`
}

// Create validates ownership references and stores a new liability.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Liability, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.checkOwnership(ctx, in.OwnerEntityID, in.OwnershipSplit); err != nil {
		return nil, err
	}

	liability := &domain.Liability{
		Name:           name,
		Type:           in.Type,
		Balance:        in.Balance,
		InterestRate:   in.InterestRate,
		Payment:        in.Payment,
		TermMonths:     in.TermMonths,
		OwnerEntityID:  in.OwnerEntityID,
		OwnershipSplit: domain.NewSplit(in.OwnershipSplit),
	}
	if in.StartDate != nil {
		liability.StartDate = *in.StartDate
	} else {
		liability.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	liability.DueDate = in.DueDate

	if err := s.DB.WithContext(ctx).Create(liability).Error; err != nil {
		return nil, err
	}
	return liability, nil
}

// List returns all liabilities, oldest first.
func (s *Service) List(ctx context.Context) ([]domain.Liability, error) {
	var list []domain.Liability
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns one liability by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Liability, error) {
	var liability domain.Liability
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&liability).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLiabilityNotFound
		}
		return nil, err
	}
	return &liability, nil
}

// Update applies the non-nil fields of in to an existing liability.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Liability, error) {
	liability, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		liability.Name = name
	}
	if in.Type != nil {
		liability.Type = *in.Type
	}
	if in.Balance != nil {
		liability.Balance = *in.Balance
	}
	if in.InterestRate != nil {
		liability.InterestRate = *in.InterestRate
	}
	if in.Payment != nil {
		liability.Payment = in.Payment
	}
	if in.TermMonths != nil {
		liability.TermMonths = in.TermMonths
	}
	if in.OwnerEntityID != nil {
		liability.OwnerEntityID = in.OwnerEntityID
	}
	if in.OwnershipSplit != nil {
		liability.OwnershipSplit = domain.NewSplit(*in.OwnershipSplit)
	}
	if in.StartDate != nil {
		liability.StartDate = *in.StartDate
	}
	if in.DueDate != nil {
		liability.DueDate = in.DueDate
	}

	var split map[string]float64
	if len(liability.OwnershipSplit.Data()) > 0 {
		split = liability.OwnershipSplit.Data()
	}
	if err := s.checkOwnership(ctx, liability.OwnerEntityID, split); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(liability).Error; err != nil {
		return nil, err
	}
	return liability, nil
}

// Delete removes one liability.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Liability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLiabilityNotFound
	}
	return nil
}

// Schedule builds the amortization schedule and projected payoff date for one
// liability. Unschedulable and non-amortizing outcomes are reported in the
// Status field, not as errors: they are expected states, and the caller renders
// "schedule unavailable" rather than failing.
func (s *Service) Schedule(ctx context.Context, id uuid.UUID, maxPeriods int) (*ScheduleResult, error) {
	liability, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule, buildErr := ledger.BuildSchedule(ledger.ScheduleInput{
		Balance:    liability.Balance,
		AnnualRate: liability.InterestRate,
		Payment:    liability.Payment,
		TermMonths: liability.TermMonths,
		MaxPeriods: maxPeriods,
	})
	result := &ScheduleResult{
		LiabilityID: liability.ID,
		Status:      ledger.Classify(schedule, buildErr),
		Schedule:    schedule,
	}
	if payoff, ok := ledger.PayoffDate(liability.StartDate, schedule); ok {
		result.PayoffDate = &payoff
	}
	return result, nil
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
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Entity{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(unique)) {
		return ErrUnknownEntity
	}
	return nil
}
