package ledger

import (
	"math"
	"time"
)

// DefaultMaxPeriods bounds schedule length when the caller does not supply a
// horizon (100 years of monthly periods).
const DefaultMaxPeriods = 1200

// payoffEpsilon is the residual balance treated as fully paid (one cent).
const payoffEpsilon = 0.01

// Status classifies the outcome of BuildSchedule for one liability.
type Status string

const (
	// StatusUnscheduled: no payment or term supplied and none derivable.
	StatusUnscheduled Status = "unscheduled"
	// StatusNonAmortizing: payment does not cover monthly interest.
	StatusNonAmortizing Status = "non_amortizing"
	// StatusPaying: schedule produced, balance still open at the horizon.
	StatusPaying Status = "paying"
	// StatusPaidOff: balance reaches zero within the horizon.
	StatusPaidOff Status = "paid_off"
)

// Row is one month of an amortization schedule.
type Row struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Schedule is the full period-by-period breakdown of a liability.
type Schedule struct {
	Rows          []Row   `json:"rows"`
	TotalInterest float64 `json:"total_interest"`
	Status        Status  `json:"status"`
}

// ScheduleInput carries the numeric fields of one liability. Payment and
// TermMonths are optional; at least one must be usable for a schedule to exist.
type ScheduleInput struct {
	Balance    float64
	AnnualRate float64
	Payment    *float64
	TermMonths *int
	MaxPeriods int
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualPct float64) float64 {
	return annualPct / 100 / 12
}

// DerivePayment computes the fixed monthly payment that amortizes balance over
// termMonths. A zero rate degenerates to pure principal amortization.
func DerivePayment(balance, annualRate float64, termMonths int) (float64, error) {
	if balance <= 0 || termMonths <= 0 {
		return 0, ErrDegenerateInput
	}
	r := MonthlyRate(annualRate)
	if r == 0 {
		return balance / float64(termMonths), nil
	}
	return balance * r / (1 - math.Pow(1+r, -float64(termMonths))), nil
}

// DeriveTerm computes the months to payoff for a fixed payment (closed form,
// possibly fractional). A payment at or below one month's interest can never
// amortize and returns ErrNonAmortizing.
func DeriveTerm(balance, annualRate, payment float64) (float64, error) {
	if balance <= 0 || payment <= 0 {
		return 0, ErrDegenerateInput
	}
	r := MonthlyRate(annualRate)
	if r == 0 {
		return balance / payment, nil
	}
	if payment <= balance*r {
		return 0, ErrNonAmortizing
	}
	return -math.Log(1-r*balance/payment) / math.Log(1+r), nil
}

// BuildSchedule iterates the amortization of one liability month by month.
// It resolves a usable payment (supplied, else derived from the term) and a
// horizon (supplied term, else derived, else MaxPeriods), then accumulates rows
// until payoff or the horizon. The MaxPeriods bound guarantees termination for
// any input. Expected failures are sentinel errors, never panics:
// ErrDegenerateInput when no schedule can exist, ErrNonAmortizing when the
// payment cannot pay down principal.
func BuildSchedule(in ScheduleInput) (*Schedule, error) {
	if in.Balance <= 0 {
		return nil, ErrDegenerateInput
	}
	maxPeriods := in.MaxPeriods
	if maxPeriods <= 0 {
		maxPeriods = DefaultMaxPeriods
	}

	var payment float64
	switch {
	case in.Payment != nil && *in.Payment > 0:
		payment = *in.Payment
	case in.TermMonths != nil && *in.TermMonths > 0:
		p, err := DerivePayment(in.Balance, in.AnnualRate, *in.TermMonths)
		if err != nil {
			return nil, err
		}
		payment = p
	default:
		return nil, ErrDegenerateInput
	}

	horizon := maxPeriods
	if in.TermMonths != nil && *in.TermMonths > 0 {
		horizon = *in.TermMonths
	} else if months, err := DeriveTerm(in.Balance, in.AnnualRate, payment); err == nil {
		horizon = int(math.Ceil(months))
	}
	if horizon > maxPeriods {
		horizon = maxPeriods
	}

	r := MonthlyRate(in.AnnualRate)
	remaining := in.Balance
	s := &Schedule{Status: StatusPaying}
	for month := 1; month <= horizon; month++ {
		interest := remaining * r
		principal := payment - interest
		if principal <= 0 {
			return nil, ErrNonAmortizing
		}
		paid := payment
		if principal > remaining {
			// Final row: pay off exactly what is left.
			principal = remaining
			paid = principal + interest
		}
		remaining -= principal
		s.TotalInterest += interest
		s.Rows = append(s.Rows, Row{
			Month:     month,
			Payment:   paid,
			Principal: principal,
			Interest:  interest,
			Balance:   remaining,
		})
		if remaining <= payoffEpsilon {
			s.Status = StatusPaidOff
			break
		}
	}
	if len(s.Rows) == 0 {
		return nil, ErrDegenerateInput
	}
	return s, nil
}

// Classify maps a BuildSchedule outcome onto the liability lifecycle.
func Classify(s *Schedule, err error) Status {
	switch {
	case err == ErrNonAmortizing:
		return StatusNonAmortizing
	case err != nil || s == nil:
		return StatusUnscheduled
	default:
		return s.Status
	}
}

// PayoffDate adds the schedule's final month count to the start date, clamping
// the day of month (Jan 31 plus one month lands on the last day of February).
// The second return is false when the schedule is empty.
func PayoffDate(start time.Time, s *Schedule) (time.Time, bool) {
	if s == nil || len(s.Rows) == 0 {
		return time.Time{}, false
	}
	return addMonthsClamped(start, s.Rows[len(s.Rows)-1].Month), true
}

// addMonthsClamped avoids time.AddDate's day overflow (Jan 31 + 1 month there
// is Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, time.Month(int(m)+months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
