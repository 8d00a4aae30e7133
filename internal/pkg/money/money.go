package money

import "github.com/shopspring/decimal"

// Round2 rounds a currency amount to cents. Decimal arithmetic avoids the
// binary-float artifacts (1.005 -> 1.00) of rounding via math.Round.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
