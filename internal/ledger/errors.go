package ledger

import "errors"

var (
	// ErrDegenerateInput is returned when a balance, payment or term that must be
	// positive is zero or negative, or when no usable payment can be resolved.
	ErrDegenerateInput = errors.New("Degenerate loan input")

	// ErrNonAmortizing is returned when the payment does not cover one month's
	// interest, so the principal never decreases.
	ErrNonAmortizing = errors.New("Payment does not cover monthly interest")
)
