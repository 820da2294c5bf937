// Package rates fetches exchange rates and converts amounts between
// currencies through a USD pivot.
package rates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Convert converts amount from one currency to another using a USD pivot:
// amount * (rates[to] / rates[from]). No rounding is applied here; rounding
// is a presentation concern.
func Convert(amount decimal.Decimal, from, to core.Currency, rates core.Rates) (decimal.Decimal, error) {
	rf, ok := rates[from]
	if !ok || rf == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", core.ErrMissingRate, from)
	}
	rt, ok := rates[to]
	if !ok || rt == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", core.ErrMissingRate, to)
	}
	// The factor is computed in float64 first so that from == to yields
	// exactly 1 and conversion to the same currency is the identity.
	return amount.Mul(decimal.NewFromFloat(rt / rf)), nil
}
