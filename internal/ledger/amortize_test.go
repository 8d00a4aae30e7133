package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestDerivePayment_FixedRate(t *testing.T) {
	// 12,000 at 6% over 12 months: standard fixed-payment formula.
	pmt, err := DerivePayment(12000, 6, 12)
	require.NoError(t, err)
	assert.InDelta(t, 1032.79, pmt, 0.01)
}

func TestDerivePayment_ZeroRate(t *testing.T) {
	pmt, err := DerivePayment(1200, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 100.0, pmt)
}

func TestDerivePayment_DegenerateInput(t *testing.T) {
	_, err := DerivePayment(0, 5, 12)
	assert.ErrorIs(t, err, ErrDegenerateInput)
	_, err = DerivePayment(1000, 5, 0)
	assert.ErrorIs(t, err, ErrDegenerateInput)
	_, err = DerivePayment(-1, 5, 12)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

// Non-amortizing: monthly interest on 1,000 at 5% is ~4.17, payment is 4.
func TestDeriveTerm_NonAmortizing(t *testing.T) {
	_, err := DeriveTerm(1000, 5, 4)
	assert.ErrorIs(t, err, ErrNonAmortizing)
}

func TestDeriveTerm_ZeroRate(t *testing.T) {
	months, err := DeriveTerm(1200, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 12.0, months)
}

// Round-trip: the term derived from a derived payment recovers the original.
func TestDeriveTerm_RoundTrip(t *testing.T) {
	cases := []struct {
		balance float64
		rate    float64
		term    int
	}{
		{12000, 6, 12},
		{250000, 4.5, 360},
		{5000, 0, 24},
		{800, 19.9, 6},
	}
	for _, tc := range cases {
		pmt, err := DerivePayment(tc.balance, tc.rate, tc.term)
		require.NoError(t, err)
		months, err := DeriveTerm(tc.balance, tc.rate, pmt)
		require.NoError(t, err)
		assert.InDelta(t, float64(tc.term), months, 1.0)
	}
}

func TestBuildSchedule_ScenarioTwelveMonths(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 12000, AnnualRate: 6, TermMonths: intPtr(12)})
	require.NoError(t, err)
	assert.Len(t, s.Rows, 12)
	assert.Equal(t, StatusPaidOff, s.Status)

	pmt, _ := DerivePayment(12000, 6, 12)
	// Total paid equals principal plus interest; the final row only clamps cents.
	assert.InDelta(t, 12*pmt-12000, s.TotalInterest, 0.05)

	// Principal is fully repaid and the final balance is within epsilon.
	var principal float64
	for _, row := range s.Rows {
		principal += row.Principal
	}
	assert.InDelta(t, 12000.0, principal, 1e-6)
	assert.LessOrEqual(t, s.Rows[len(s.Rows)-1].Balance, 0.01)
}

// Zero-rate linearity: T equal principal rows, no interest.
func TestBuildSchedule_ZeroRateLinear(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 1200, AnnualRate: 0, TermMonths: intPtr(12)})
	require.NoError(t, err)
	require.Len(t, s.Rows, 12)
	assert.Equal(t, 0.0, s.TotalInterest)
	for _, row := range s.Rows {
		assert.Equal(t, 0.0, row.Interest)
		assert.InDelta(t, 100.0, row.Principal, 1e-9)
	}
	assert.Equal(t, StatusPaidOff, s.Status)
}

// Non-amortizing loans are detected immediately, never iterated.
func TestBuildSchedule_NonAmortizing(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 1000, AnnualRate: 5, Payment: floatPtr(4)})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNonAmortizing)
	assert.Equal(t, StatusNonAmortizing, Classify(s, err))
}

func TestBuildSchedule_Unscheduled(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 1000, AnnualRate: 5})
	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.Equal(t, StatusUnscheduled, Classify(s, err))

	s, err = BuildSchedule(ScheduleInput{Balance: 0, AnnualRate: 5, Payment: floatPtr(50)})
	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.Equal(t, StatusUnscheduled, Classify(s, err))
}

// Supplied payment wins over the derived one; payoff arrives early.
func TestBuildSchedule_SuppliedPaymentOverpays(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 1200, AnnualRate: 0, Payment: floatPtr(500), TermMonths: intPtr(12)})
	require.NoError(t, err)
	assert.Len(t, s.Rows, 3)
	assert.Equal(t, StatusPaidOff, s.Status)
	// Final row clamps to the remaining 200.
	last := s.Rows[len(s.Rows)-1]
	assert.InDelta(t, 200.0, last.Payment, 1e-9)
	assert.InDelta(t, 0.0, last.Balance, 1e-9)
}

// Bounded work: MaxPeriods caps iteration even when payoff never arrives.
func TestBuildSchedule_BoundedWork(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 1e6, AnnualRate: 0, Payment: floatPtr(0.02), MaxPeriods: 50})
	require.NoError(t, err)
	assert.Len(t, s.Rows, 50)
	assert.Equal(t, StatusPaying, s.Status)
}

// Calendar clamp: one month from Jan 31, 2024 is Feb 29 (leap year), not Mar 2.
func TestPayoffDate_MonthEndClamp(t *testing.T) {
	s, err := BuildSchedule(ScheduleInput{Balance: 100, AnnualRate: 0, Payment: floatPtr(200)})
	require.NoError(t, err)
	require.Len(t, s.Rows, 1)

	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	payoff, ok := PayoffDate(start, s)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), payoff)
}

func TestPayoffDate_YearRollover(t *testing.T) {
	s := &Schedule{Rows: []Row{{Month: 14}}}
	start := time.Date(2023, time.November, 30, 0, 0, 0, 0, time.UTC)
	payoff, ok := PayoffDate(start, s)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC), payoff)
}

func TestPayoffDate_EmptySchedule(t *testing.T) {
	_, ok := PayoffDate(time.Now(), nil)
	assert.False(t, ok)
	_, ok = PayoffDate(time.Now(), &Schedule{})
	assert.False(t, ok)
}
